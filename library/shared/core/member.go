package core

import (
	"github.com/google/uuid"
)

// Member is a registered library member. MemberNumber and NationalID are unique.
type Member struct {
	ID           uuid.UUID
	Name         string
	MemberNumber int64
	NationalID   string
	Version      int64
}

// NewMember creates a new member.
func NewMember(id uuid.UUID, name string, memberNumber int64, nationalID string) Member {
	return Member{
		ID:           id,
		Name:         name,
		MemberNumber: memberNumber,
		NationalID:   nationalID,
	}
}
