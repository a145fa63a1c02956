package adib

import (
	"testing"

	"github.com/haithamq/finsort/extractor/common"
)

func extractFirst(t *testing.T, body string) (common.Extraction, string) {
	t.Helper()
	for _, rule := range Profile().Rules {
		if x, ok := rule.Apply(body); ok {
			return x, rule.Name
		}
	}
	t.Fatalf("No rule matched: %q", body)
	return common.Extraction{}, ""
}

func TestCardPurchase(t *testing.T) {
	body := "Trx. of AED35.40 on your card ending *298 at SMILES FOOD, UAE is Approved. Avl. card bal is 9934.17"
	x, name := extractFirst(t, body)

	if name != "card_purchase" {
		t.Errorf("Expected rule 'card_purchase', got '%s'", name)
	}
	if x.Amount.String() != "35.4" {
		t.Errorf("Expected amount 35.4, got %s", x.Amount.String())
	}
	if x.Currency != "AED" {
		t.Errorf("Expected currency AED, got %s", x.Currency)
	}
	if x.CardLastFour != "298" {
		t.Errorf("Expected card '298', got '%s'", x.CardLastFour)
	}
	if x.Merchant != "SMILES FOOD" {
		t.Errorf("Expected merchant 'SMILES FOOD', got '%s'", x.Merchant)
	}
	if !x.Approved {
		t.Error("Expected approved=true")
	}
	if x.Balance == nil || x.Balance.String() != "9934.17" {
		t.Errorf("Expected balance 9934.17, got %v", x.Balance)
	}
	if x.Direction != common.DirectionDebit {
		t.Errorf("Expected debit, got %s", x.Direction)
	}
}

func TestCardPurchase_Declined(t *testing.T) {
	body := "Trx. of AED1,250.00 on your card ending *298 at LUXURY WATCHES LLC, UAE is Declined."
	x, _ := extractFirst(t, body)

	if x.Approved {
		t.Error("Expected approved=false for declined transaction")
	}
	if x.Amount.String() != "1250" {
		t.Errorf("Expected amount 1250, got %s", x.Amount.String())
	}
	if x.Balance != nil {
		t.Errorf("Expected no balance, got %v", x.Balance)
	}
}

// A body matched by both the specific purchase rule and the generic fallback
// must reflect the specific rule's fields. Rule order encodes priority.
func TestRuleOrder_SpecificBeforeGeneric(t *testing.T) {
	body := "Trx. of AED35.40 on your card ending *298 at SMILES FOOD, UAE is Approved. Avl. card bal is 9934.17"

	generic := Profile().Rules[len(Profile().Rules)-1]
	if _, ok := generic.Apply(body); !ok {
		t.Fatal("Sanity: generic rule should also match this body")
	}

	x, name := extractFirst(t, body)
	if name != "card_purchase" {
		t.Errorf("Expected the specific rule to win, got '%s'", name)
	}
	if x.CardLastFour != "298" {
		t.Errorf("Expected specific rule's card capture, got '%s'", x.CardLastFour)
	}
}

func TestATMWithdrawal(t *testing.T) {
	body := "Cash withdrawal of AED 500.00 from your card ending *298. Avl. bal is 4,210.55"
	x, name := extractFirst(t, body)

	if name != "atm_withdrawal" {
		t.Errorf("Expected rule 'atm_withdrawal', got '%s'", name)
	}
	if x.Merchant != "ATM Withdrawal" {
		t.Errorf("Expected merchant label 'ATM Withdrawal', got '%s'", x.Merchant)
	}
	if x.Balance == nil || x.Balance.String() != "4210.55" {
		t.Errorf("Expected balance 4210.55, got %v", x.Balance)
	}
}

func TestAccountCredit(t *testing.T) {
	body := "AED 8,500.00 has been credited to your account ending *4410 from ACME PAYROLL WPS."
	x, name := extractFirst(t, body)

	if name != "account_credit" {
		t.Errorf("Expected rule 'account_credit', got '%s'", name)
	}
	if x.Direction != common.DirectionCredit {
		t.Errorf("Expected credit, got %s", x.Direction)
	}
	if x.Merchant != "ACME PAYROLL WPS" {
		t.Errorf("Expected merchant 'ACME PAYROLL WPS', got '%s'", x.Merchant)
	}
	if x.Amount.String() != "8500" {
		t.Errorf("Expected amount 8500, got %s", x.Amount.String())
	}
}

func TestNoMatch(t *testing.T) {
	for _, rule := range Profile().Rules {
		if _, ok := rule.Apply("Your OTP code is 123456. Do not share it with anyone."); ok {
			t.Errorf("Rule '%s' should not match an OTP message", rule.Name)
		}
	}
}
