package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"time"
)

// FavoriteList is a named, ordered set of professional ids owned by one user.
type FavoriteList struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ListOfIDs   []uint    `json:"list_of_ids"`
	OwnerUserID uint      `json:"owner_user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IDList decodes an optional JSON array of ids, remembering whether the
// field was present and whether it was an array of non-negative integers.
type IDList struct {
	IDs     []uint
	Set     bool
	Invalid bool
}

func (l *IDList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	l.Set = true
	var raw []json.Number
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		l.Invalid = true
		return nil
	}
	ids := make([]uint, 0, len(raw))
	for _, n := range raw {
		v, err := n.Int64()
		if err != nil || v < 0 {
			l.Invalid = true
			return nil
		}
		ids = append(ids, uint(v))
	}
	l.IDs = ids
	return nil
}

func Of(ids ...uint) IDList { return IDList{IDs: ids, Set: true} }

// Dedup keeps the first occurrence of each id, preserving order.
func Dedup(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type FavoriteCreate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ListOfIDs   IDList  `json:"list_of_ids"`
	OwnerUserID uint    `json:"-"`
}

type FavoritePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ListOfIDs   IDList  `json:"list_of_ids"`
}

func (p FavoritePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && !p.ListOfIDs.Set
}

type FavoriteRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]FavoriteList, error)
	FindByID(ctx context.Context, id uint) (*FavoriteList, error)
	// Create stores the list and its members in one transaction.
	Create(ctx context.Context, l *FavoriteList) error
	// Update applies the patch; a set ListOfIDs replaces membership atomically.
	Update(ctx context.Context, id uint, p FavoritePatch) error
	Delete(ctx context.Context, id uint) (bool, error)
	AddMember(ctx context.Context, id, professionalID uint) error
	RemoveMember(ctx context.Context, id, professionalID uint) error
	ListIDsContaining(ctx context.Context, ownerID, professionalID uint) ([]uint, error)
	MemberIDsByOwner(ctx context.Context, ownerID uint) ([]uint, error)
}
