package domain

// UserRole determines what a member may do in the library.
type UserRole string

const (
	UserRoleLibrarian UserRole = "librarian"
	UserRoleBorrower  UserRole = "borrower"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleLibrarian, UserRoleBorrower:
		return true
	}
	return false
}

// UserStatus is the membership state. Inactive members cannot borrow.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

func (s UserStatus) String() string { return string(s) }

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive:
		return true
	}
	return false
}

// LoanStatus is the stored state of a loan. Overdue is never stored;
// see Loan.IsOverdue.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusReturned LoanStatus = "returned"
)

func (s LoanStatus) String() string { return string(s) }

func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusReturned:
		return true
	}
	return false
}

// FineStatus is the payment state of a fine.
type FineStatus string

const (
	FineStatusUnpaid FineStatus = "unpaid"
	FineStatusPaid   FineStatus = "paid"
)

func (s FineStatus) String() string { return string(s) }

func (s FineStatus) IsValid() bool {
	switch s {
	case FineStatusUnpaid, FineStatusPaid:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeBook EntityType = "BOOK"
	EntityTypeUser EntityType = "USER"
	EntityTypeLoan EntityType = "LOAN"
	EntityTypeFine EntityType = "FINE"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeBook, EntityTypeUser, EntityTypeLoan, EntityTypeFine:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}
