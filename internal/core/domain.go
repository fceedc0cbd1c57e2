package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusActive   MemberStatus = "active"
	StatusInactive MemberStatus = "inactive"

	RoleAdmin  Role = "admin"
	RoleMember Role = "member"

	Deposit TransactionType = "deposit"
	Expense TransactionType = "expense"

	ProjectVoting    ProjectStatus = "voting"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

type (
	MemberStatus    string
	Role            string
	TransactionType string
	ProjectStatus   string

	Money struct {
		Cents int64
	}

	// Member is a fund participant. Username and Password are set only on
	// the administrator account.
	Member struct {
		ID            int64        `json:"id"`
		Name          string       `json:"name"`
		Username      string       `json:"username,omitempty"`
		Password      string       `json:"password,omitempty"`
		Phone         string       `json:"phone"`
		JoinDate      Date         `json:"joinDate"`
		Status        MemberStatus `json:"status"`
		Role          Role         `json:"role"`
		MonthlyPledge Money        `json:"monthlyPledge"`
	}

	// Project is a fundable initiative moving through the
	// voting -> active -> completed lifecycle.
	Project struct {
		ID             int64         `json:"id"`
		Title          string        `json:"title"`
		Description    string        `json:"description"`
		Cost           Money         `json:"cost"`
		Status         ProjectStatus `json:"status"`
		Votes          int           `json:"votes"`
		VotedMemberIDs []int64       `json:"votedMemberIds"`
		Image          string        `json:"image,omitempty"`
	}

	// Transaction is a single ledger entry. Amount is always positive; the
	// sign follows from Type. MemberID and ProjectID are weak references: a
	// zero value means unset, and a non-zero value may point at an entity
	// that no longer exists.
	Transaction struct {
		ID          int64           `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Date        time.Time       `json:"date"`
		Description string          `json:"description"`
		MemberID    int64           `json:"memberId,omitempty"`
		ProjectID   int64           `json:"projectId,omitempty"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyTitle       = errors.New("empty title")
	ErrInvalidPhone     = errors.New("phone must be exactly 8 digits")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidType      = errors.New("invalid transaction type")
)

// PhoneDigits is the required length of a member phone number
// (local numbering plan, no country code).
const PhoneDigits = 8

// ValidPhone reports whether s is exactly PhoneDigits ASCII digits.
func ValidPhone(s string) bool {
	if len(s) != PhoneDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (t TransactionType) Valid() bool {
	return t == Deposit || t == Expense
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectVoting, ProjectActive, ProjectCompleted:
		return true
	}
	return false
}

func (s MemberStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

func (m Member) Validate() error {
	if len(strings.TrimSpace(m.Name)) == 0 {
		return ErrEmptyName
	}
	if !ValidPhone(m.Phone) {
		return ErrInvalidPhone
	}
	if !m.Status.Valid() {
		return ErrInvalidStatus
	}
	if m.MonthlyPledge.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (p Project) Validate() error {
	if len(strings.TrimSpace(p.Title)) == 0 {
		return ErrEmptyTitle
	}
	if p.Cost.Cents < 0 {
		return ErrInvalidAmount
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
