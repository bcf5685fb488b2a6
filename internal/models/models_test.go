// internal/models/models_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductTransitions(t *testing.T) {
	cases := []struct {
		from    ProductStatus
		to      ProductStatus
		allowed bool
	}{
		{ProductStatusPending, ProductStatusApproved, true},
		{ProductStatusPending, ProductStatusRejected, true},
		{ProductStatusPending, ProductStatusSold, false},
		{ProductStatusApproved, ProductStatusSold, true},
		{ProductStatusApproved, ProductStatusRejected, true},
		{ProductStatusRejected, ProductStatusApproved, true},
		{ProductStatusSold, ProductStatusApproved, true}, // relist on cancellation
		{ProductStatusSold, ProductStatusRejected, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusPaid, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderTerminalStates(t *testing.T) {
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusPaid.Terminal())
	assert.False(t, OrderStatusShipped.Terminal())
}

func TestFulfillmentTargets(t *testing.T) {
	assert.True(t, FulfillmentTarget(OrderStatusShipped))
	assert.True(t, FulfillmentTarget(OrderStatusDelivered))
	assert.True(t, FulfillmentTarget(OrderStatusCancelled))

	// Paid is only reachable through payment confirmation.
	assert.False(t, FulfillmentTarget(OrderStatusPaid))
	assert.False(t, FulfillmentTarget(OrderStatus("teleported")))
}

func TestUserRoleHelpers(t *testing.T) {
	moderator := &User{Role: RoleModerator}
	assert.True(t, moderator.IsStaff())
	assert.True(t, moderator.HasAnyRole(RoleModerator, RoleAdmin))
	assert.False(t, moderator.HasAnyRole(RoleSeller))

	buyer := &User{Role: RoleUser}
	assert.False(t, buyer.IsStaff())

	root := &User{Role: RoleRoot}
	assert.True(t, root.IsStaff())
}

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	assert.NoError(t, user.SetPassword("secret-password"))
	assert.NotEqual(t, "secret-password", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("secret-password"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestProductAvailability(t *testing.T) {
	assert.True(t, (&Product{Status: ProductStatusApproved}).Available())
	assert.False(t, (&Product{Status: ProductStatusPending}).Available())
	assert.False(t, (&Product{Status: ProductStatusSold}).Available())
}

func TestValidEnums(t *testing.T) {
	assert.True(t, ValidRole(RoleSeller))
	assert.False(t, ValidRole("superhero"))
	assert.True(t, ValidCategory(CategorySneakers))
	assert.False(t, ValidCategory("vehicles"))
	assert.True(t, ValidCondition(ConditionLikeNew))
	assert.False(t, ValidCondition("mint"))
}
