package models

// AuditLogType defines the types of auditable events in the system
type AuditLogType string

const (
	// Authentication-related audit log types
	AuditLogTypeLoginSuccess  AuditLogType = "LOGIN_SUCCESS"  // User successfully logged in
	AuditLogTypeLoginFailed   AuditLogType = "LOGIN_FAILED"   // Failed login attempt
	AuditLogTypeLogoutSuccess AuditLogType = "LOGOUT_SUCCESS" // User successfully logged out

	// User management audit log types
	AuditLogTypeUserRegistered  AuditLogType = "USER_REGISTERED"  // New user self-registered
	AuditLogTypeUserProvisioned AuditLogType = "USER_PROVISIONED" // User created via identity-provider webhook

	// Resource mutation audit log types
	AuditLogTypeResourceCreated AuditLogType = "RESOURCE_CREATED" // Admin created a record
	AuditLogTypeResourceUpdated AuditLogType = "RESOURCE_UPDATED" // Record was updated
	AuditLogTypeResourceDeleted AuditLogType = "RESOURCE_DELETED" // Admin deleted a record

	// Security-related audit log types
	AuditLogTypeForbiddenAttempt AuditLogType = "FORBIDDEN_ATTEMPT" // Non-admin attempted a mutating call
)
