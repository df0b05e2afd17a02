package models

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

type TransactionMeans string

const (
	MeansCash  TransactionMeans = "Cash"
	MeansMpesa TransactionMeans = "M-PESA"
	MeansBank  TransactionMeans = "Bank"
	MeansOther TransactionMeans = "Other"
)

func (m TransactionMeans) Valid() bool {
	switch m {
	case MeansCash, MeansMpesa, MeansBank, MeansOther:
		return true
	}
	return false
}

type TransactionType string

const (
	TypeDeposit     TransactionType = "Deposit"
	TypeWithdrawal  TransactionType = "Withdrawal"
	TypeRentPayment TransactionType = "Rent Payment"
	TypeFeePayment  TransactionType = "Fee Payment"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeRentPayment, TypeFeePayment:
		return true
	}
	return false
}

// Credit reports whether the transaction adds to the account balance.
func (t TransactionType) Credit() bool {
	return t == TypeDeposit
}

type FeedbackRate string

const (
	RateExcellent FeedbackRate = "Excellent"
	RateGood      FeedbackRate = "Good"
	RateAverage   FeedbackRate = "Average"
	RatePoor      FeedbackRate = "Poor"
	RateTerrible  FeedbackRate = "Terrible"
)

func (r FeedbackRate) Valid() bool {
	switch r {
	case RateExcellent, RateGood, RateAverage, RatePoor, RateTerrible:
		return true
	}
	return false
}

type SenderRole string

const (
	RoleOwner           SenderRole = "Property Owner"
	RolePropertyManager SenderRole = "Property Manager"
	RoleTenant          SenderRole = "Tenant"
	RoleCaretaker       SenderRole = "Caretaker"
)

type UtilityName string

const (
	UtilityCurrency                UtilityName = "Currency"
	UtilityRentPaymentStartDate    UtilityName = "Rent Payment Start Date"
	UtilityRentPaymentEndDate      UtilityName = "Rent Payment End Date"
	UtilityRentPaymentDateReminder UtilityName = "Rent Payment Date Reminder"
)

type DocumentName string

const (
	DocumentTermsOfUse DocumentName = "Terms of Service"
	DocumentPolicy     DocumentName = "Policy"
)

func (d DocumentName) Valid() bool {
	return d == DocumentTermsOfUse || d == DocumentPolicy
}

type OccupiedStatus string

const (
	StatusOccupied OccupiedStatus = "Occupied"
	StatusVacant   OccupiedStatus = "Vacant"
	StatusClosed   OccupiedStatus = "Closed"
)

type MessageCategory string

const (
	CategoryGeneral     MessageCategory = "General"
	CategoryPayment     MessageCategory = "Payment"
	CategoryMaintenance MessageCategory = "Maintenance"
	CategoryPromotion   MessageCategory = "Promotion"
	CategoryWarning     MessageCategory = "Warning"
	CategoryOther       MessageCategory = "Other"
)

func (c MessageCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryPayment, CategoryMaintenance, CategoryPromotion, CategoryWarning, CategoryOther:
		return true
	}
	return false
}

type ConcernStatus string

const (
	ConcernOpen       ConcernStatus = "Open"
	ConcernInProgress ConcernStatus = "In Progress"
	ConcernResolved   ConcernStatus = "Resolved"
	ConcernClosed     ConcernStatus = "Closed"
)

func (s ConcernStatus) Valid() bool {
	switch s {
	case ConcernOpen, ConcernInProgress, ConcernResolved, ConcernClosed:
		return true
	}
	return false
}
