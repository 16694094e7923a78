package mod

import (
	"strings"
	"time"
)

// BinRecord is everything known about one BIN. Values are never mutated once
// built; a newer lookup replaces the stored record as a whole.
type BinRecord struct {
	Bin       string      `json:"bin"`
	Scheme    *string     `json:"scheme,omitempty"`    //mastercard, visa, unionpay, etc
	CardType  *string     `json:"card_type,omitempty"` //卡类型, debit or credit
	Brand     *string     `json:"brand,omitempty"`
	Prepaid   *bool       `json:"prepaid,omitempty"`
	Number    *CardNumber `json:"number,omitempty"`
	Country   *Country    `json:"country,omitempty"`
	Bank      *Bank       `json:"bank,omitempty"`
	FetchedAt time.Time   `json:"fetched_at"`
}

type CardNumber struct {
	Length *int  `json:"length,omitempty"`
	Luhn   *bool `json:"luhn,omitempty"`
}

type Country struct {
	Numeric   *string  `json:"numeric,omitempty"`
	Alpha2    *string  `json:"alpha2,omitempty"`
	Name      *string  `json:"name,omitempty"`     //国家, 英文名称
	Emoji     *string  `json:"emoji,omitempty"`    //国旗
	Currency  *string  `json:"currency,omitempty"` //货币代码
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type Bank struct {
	Name      *string  `json:"name,omitempty"`  //银行, 英文名称
	Url       *string  `json:"url,omitempty"`   //银行官网
	Phone     *string  `json:"phone,omitempty"` //银行服务电话
	City      *string  `json:"city,omitempty"`  //银行所在城市
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Matches reports whether the record should be listed for a history search.
// An empty query matches everything.
func (r BinRecord) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	contains := func(s *string) bool {
		return s != nil && strings.Contains(strings.ToLower(*s), q)
	}
	if strings.Contains(strings.ToLower(r.Bin), q) || contains(r.Scheme) {
		return true
	}
	if r.Bank != nil && contains(r.Bank.Name) {
		return true
	}
	return r.Country != nil && contains(r.Country.Name)
}

// BankName returns the bank name or "" when unknown.
func (r BinRecord) BankName() string {
	if r.Bank == nil || r.Bank.Name == nil {
		return ""
	}
	return *r.Bank.Name
}

// String returns a pointer to s, or nil for the empty string.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Float(f float64) *float64 { return &f }

func Bool(b bool) *bool { return &b }

func Int(i int) *int { return &i }

// Value dereferences s, returning "" for nil.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
