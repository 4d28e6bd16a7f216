package models

import "time"

// Month is a French month name used for tuition instalments.
type Month string

const (
	MonthOctober  Month = "Octobre"
	MonthNovember Month = "Novembre"
	MonthDecember Month = "Décembre"
	MonthJanuary  Month = "Janvier"
	MonthFebruary Month = "Février"
	MonthMarch    Month = "Mars"
	MonthApril    Month = "Avril"
	MonthMay      Month = "Mai"
	MonthJune     Month = "Juin"
	MonthJuly     Month = "Juillet"
)

// AcademicMonths lists the billable months of a school year in calendar order.
var AcademicMonths = []Month{
	MonthOctober, MonthNovember, MonthDecember, MonthJanuary, MonthFebruary,
	MonthMarch, MonthApril, MonthMay, MonthJune, MonthJuly,
}

// Valid reports whether m is a billable month.
func (m Month) Valid() bool {
	for _, month := range AcademicMonths {
		if month == m {
			return true
		}
	}
	return false
}

// TuitionFee is a monthly payment record, unique per (student, month).
type TuitionFee struct {
	ID         string    `db:"id" json:"id"`
	StudentID  string    `db:"student_id" json:"student_id"`
	Month      Month     `db:"month" json:"month"`
	Amount     float64   `db:"amount" json:"amount"`
	PaidAt     time.Time `db:"paid_at" json:"paid_at"`
	IsComplete bool      `db:"is_complete" json:"is_complete"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Remaining returns the unpaid amount of the instalment.
func (f TuitionFee) Remaining() float64 {
	if f.IsComplete {
		return 0
	}
	return f.Amount
}

// TuitionFeeDetail adds student identity to a fee.
type TuitionFeeDetail struct {
	TuitionFee
	StudentName string `db:"student_name" json:"student_name"`
	Matricule   string `db:"matricule" json:"matricule"`
	ClassID     string `db:"class_id" json:"class_id"`
}

// FeeFilter narrows fee listings.
type FeeFilter struct {
	StudentID string
	ClassID   string
	Month     Month
	Page      int
	PageSize  int
}

// FinanceStatus classifies the balance of a student.
type FinanceStatus string

const (
	FinanceUpToDate FinanceStatus = "À jour"
	FinanceWarning  FinanceStatus = "Attention"
	FinanceLate     FinanceStatus = "En retard"
)

// StudentFinance summarises payments of one student.
type StudentFinance struct {
	StudentID    string        `json:"student_id"`
	StudentName  string        `json:"student_name"`
	Matricule    string        `json:"matricule"`
	TotalPaid    float64       `json:"total_paid"`
	TotalDue     float64       `json:"total_due"`
	Balance      float64       `json:"balance"`
	UnpaidMonths []Month       `json:"unpaid_months"`
	Status       FinanceStatus `json:"status"`
}

// ClassFinance lists student finances for a class.
type ClassFinance struct {
	ClassID   string           `json:"class_id"`
	ClassName string           `json:"class_name"`
	Students  []StudentFinance `json:"students"`
	TotalPaid float64          `json:"total_paid"`
	TotalDue  float64          `json:"total_due"`
}

// FeeAction names the change applied to a fee.
type FeeAction string

const (
	FeeCreated FeeAction = "created"
	FeeUpdated FeeAction = "updated"
	FeeDeleted FeeAction = "deleted"
)

// FeeEvent is published to the notification collaborator after a fee write.
type FeeEvent struct {
	Action     FeeAction  `json:"action"`
	Fee        TuitionFee `json:"fee"`
	StudentID  string     `json:"student_id"`
	Student    string     `json:"student"`
	Matricule  string     `json:"matricule"`
	OccurredAt time.Time  `json:"occurred_at"`
}
