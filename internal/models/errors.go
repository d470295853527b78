package models

import (
	"errors"
)

var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("there is no")
	ErrReferenceNotFound = errors.New("there is no resource for the ID you specified in the reference to another resource")
)

// Transaction errors
var (
	ErrDuplicateEmail    = errors.New("a transaction for this email has already been recorded")
	ErrConfidenceInvalid = errors.New("confidence must be one of high, medium, low")
	ErrTransactionNoUser = errors.New("a transaction must belong to a user")
	ErrTransactionSource = errors.New("source must be one of email, manual")
)

// Vendor cache errors
var (
	ErrVendorCacheNotUnique = errors.New("there is already a vendor cache entry for this vendor")
	ErrVendorNameEmpty      = errors.New("the vendor name must not be empty")
)

// Category errors
var (
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
	ErrCategoryNameEmpty     = errors.New("the category name must not be empty")
)

// Budget errors
var (
	ErrBudgetMonthNotUnique = errors.New("there is already a budget for this category and month")
	ErrBudgetMonthInvalid   = errors.New("the budget month must be between 1 and 12")
	ErrBudgetNegative       = errors.New("the budget amount must not be negative")
)

// User errors
var (
	ErrUserEmailNotUnique      = errors.New("there is already a user with this email address")
	ErrInboundAddressNotUnique = errors.New("the inbound address is already in use")
	ErrBudgetModeInvalid       = errors.New("budget mode must be one of direct, percentage")
)
