package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/alex-pricope/event-judging-system/storage"
)

var ErrUnknownPrincipal = errors.New("principal not found")

// Principal is the authenticated caller. It is either an AdminPrincipal or a
// JudgePrincipal; the unexported method keeps the set closed.
type Principal interface {
	Role() Role
	Identity() string
	principal()
}

type AdminPrincipal struct {
	ID      string
	Name    string
	Email   string
	IsSuper bool
}

func (AdminPrincipal) Role() Role         { return RoleAdmin }
func (a AdminPrincipal) Identity() string { return a.ID }
func (AdminPrincipal) principal()         {}

type JudgePrincipal struct {
	ID            string
	Name          string
	Email         string
	AssignedEvent storage.EventType
	IsActive      bool
}

func (JudgePrincipal) Role() Role         { return RoleJudge }
func (j JudgePrincipal) Identity() string { return j.ID }
func (JudgePrincipal) principal()         {}

func NewAdminPrincipal(a *storage.Admin) AdminPrincipal {
	return AdminPrincipal{ID: a.ID, Name: a.Name, Email: a.Email, IsSuper: a.IsSuper}
}

func NewJudgePrincipal(j *storage.Judge) JudgePrincipal {
	return JudgePrincipal{
		ID:            j.ID,
		Name:          j.Name,
		Email:         j.Email,
		AssignedEvent: j.AssignedEvent,
		IsActive:      j.IsActive,
	}
}

// Directory resolves verified claims to the stored entity behind them.
type Directory struct {
	Admins storage.AdminStorage
	Judges storage.JudgeStorage
}

func (d *Directory) Load(ctx context.Context, claims *Claims) (Principal, error) {
	switch claims.Role {
	case RoleAdmin:
		admin, err := d.Admins.Get(ctx, claims.UserID)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			return nil, ErrUnknownPrincipal
		}
		return NewAdminPrincipal(admin), nil
	case RoleJudge:
		judge, err := d.Judges.Get(ctx, claims.UserID)
		if err != nil {
			return nil, err
		}
		if judge == nil {
			return nil, ErrUnknownPrincipal
		}
		return NewJudgePrincipal(judge), nil
	default:
		return nil, fmt.Errorf("%w: role %q", ErrUnknownPrincipal, claims.Role)
	}
}
