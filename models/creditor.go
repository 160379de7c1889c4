package models

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// Creditor represents a party owed money under a payment order
type Creditor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	TaxID     string    `json:"cpf_cnpj"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidTaxID checks that the tax id contains 11 digits (CPF) or 14 digits (CNPJ)
func (c *Creditor) ValidTaxID() bool {
	n := countDigits(c.TaxID)
	return n == 11 || n == 14
}

// ValidEmail performs a basic local@domain.tld shape check
func (c *Creditor) ValidEmail() bool {
	return emailPattern.MatchString(c.Email)
}

// ValidPhone checks that the phone contains 10 or 11 digits
func (c *Creditor) ValidPhone() bool {
	n := countDigits(c.Phone)
	return n >= 10 && n <= 11
}

// Validate returns the list of violated rules. All rules are evaluated;
// an empty list means the creditor is valid.
func (c *Creditor) Validate() []string {
	var violations []string

	if c.Name == "" {
		violations = append(violations, "name is required")
	}
	if !c.ValidTaxID() {
		violations = append(violations, "tax id must contain 11 (CPF) or 14 (CNPJ) digits")
	}
	if !c.ValidEmail() {
		violations = append(violations, "email is invalid")
	}
	if !c.ValidPhone() {
		violations = append(violations, "phone must contain 10 or 11 digits")
	}

	return violations
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
