package services

import (
	"errors"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/apperr"

	"gorm.io/gorm"
)

// transitionRoles maps a transition (keyed by its from-status, since the
// workflow is linear) to the roles that may trigger it. Admin may drive any
// step; the restaurant owner runs the kitchen-side steps and the delivery
// partner the road-side ones. Superusers bypass this table.
var transitionRoles = map[entity.OrderStatus][]string{
	entity.StatusPending:        {entity.RoleRestaurantOwner, entity.RoleAdmin},
	entity.StatusAccepted:       {entity.RoleRestaurantOwner, entity.RoleAdmin},
	entity.StatusPreparing:      {entity.RoleDeliveryPartner, entity.RoleAdmin},
	entity.StatusOutForDelivery: {entity.RoleDeliveryPartner, entity.RoleAdmin},
}

type TransitionRes struct {
	OrderID        uint               `json:"orderId"`
	PreviousStatus entity.OrderStatus `json:"previousStatus"`
	NewStatus      entity.OrderStatus `json:"newStatus"`
}

// Transition advances the order exactly one step along the workflow.
// The engine never allows jumps: the requested status must equal the one
// legal successor of the current status, and the actor's role must be in the
// transition's allowed set. The status write is a compare-and-swap, so two
// racing calls cannot both get past the same expected-next check.
func (s *OrderService) Transition(actor Actor, orderID uint, requested entity.OrderStatus) (*TransitionRes, error) {
	var out TransitionRes
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		next, ok := o.Status.Next()
		if !ok {
			return apperr.ErrInvalidState
		}
		if requested != next {
			return &apperr.IllegalTransitionError{
				Current:   string(o.Status),
				Requested: string(requested),
				Allowed:   string(next),
			}
		}

		if !actor.Superuser && !roleAllowed(o.Status, actor.Role) {
			return apperr.ErrPermissionDenied
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, next)
		if err != nil {
			return err
		}
		if affected == 0 {
			// lost a race: someone moved the order first
			return apperr.ErrInvalidState
		}

		out = TransitionRes{OrderID: o.ID, PreviousStatus: o.Status, NewStatus: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(out.OrderID, out.PreviousStatus, out.NewStatus)
	return &out, nil
}

func roleAllowed(from entity.OrderStatus, role string) bool {
	for _, r := range transitionRoles[from] {
		if r == role {
			return true
		}
	}
	return false
}

// ----- Role entry points: same machine, restricted to one step -----

// OwnerAccept moves PENDING -> ACCEPTED.
func (s *OrderService) OwnerAccept(actor Actor, orderID uint) (*TransitionRes, error) {
	return s.Transition(actor, orderID, entity.StatusAccepted)
}

// OwnerStartPreparing moves ACCEPTED -> PREPARING.
func (s *OrderService) OwnerStartPreparing(actor Actor, orderID uint) (*TransitionRes, error) {
	return s.Transition(actor, orderID, entity.StatusPreparing)
}

// PartnerPickUp moves PREPARING -> OUT_FOR_DELIVERY.
func (s *OrderService) PartnerPickUp(actor Actor, orderID uint) (*TransitionRes, error) {
	return s.Transition(actor, orderID, entity.StatusOutForDelivery)
}

// PartnerDeliver moves OUT_FOR_DELIVERY -> DELIVERED.
func (s *OrderService) PartnerDeliver(actor Actor, orderID uint) (*TransitionRes, error) {
	return s.Transition(actor, orderID, entity.StatusDelivered)
}

// acceptOnPayment is the system path used by payment confirmation: it runs
// the PENDING -> ACCEPTED compare-and-swap inside the caller's transaction
// without a role check.
func (s *OrderService) acceptOnPayment(tx *gorm.DB, orderID uint) error {
	affected, err := s.Repo.UpdateStatusGuard(tx, orderID, entity.StatusPending, entity.StatusAccepted)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrInvalidState
	}
	return nil
}
