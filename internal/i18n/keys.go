// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAccessDenied       = "auth.access_denied"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User Management
	KeyUserCreated        = "user.created"
	KeyUserDeleted        = "user.deleted"
	KeyUserNotFound       = "user.not_found"
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserActivated      = "user.activated"
	KeyUserBlocked        = "user.blocked"

	// Products
	KeyProductCreated      = "product.created"
	KeyProductUpdated      = "product.updated"
	KeyProductResubmitted  = "product.resubmitted"
	KeyProductDeleted      = "product.deleted"
	KeyProductNotFound     = "product.not_found"
	KeyProductStatusSet    = "product.status_set"
	KeyProductUnavailable  = "product.unavailable"

	// Orders
	KeyOrderCreated       = "order.created"
	KeyOrderNotFound      = "order.not_found"
	KeyOrderStatusUpdated = "order.status_updated"
	KeyOrderPaymentError  = "order.payment_error"

	// Chat
	KeyChatMessageSent  = "chat.message_sent"
	KeyChatEmptyMessage = "chat.empty_message"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Rate limiting
	KeyRateLimited = "rate.limited"
)
