package dashboard

import "time"

// ApplicationRow is the slice of an application the aggregation needs.
type ApplicationRow struct {
	Status    string
	CreatedAt time.Time
}

// PaymentRow is the slice of a payment the aggregation needs.
type PaymentRow struct {
	Status string
	Amount int64
}

// EstateRow carries unit counts per estate. Available and Sold may be absent
// in the store; the store reports them as zero, never as nulls.
type EstateRow struct {
	Name      string
	Total     int
	Available int
	Sold      int
}

// MonthBucket counts applications created in one named month. Buckets are
// sparse and their order across year boundaries is not defined.
type MonthBucket struct {
	Month    string
	Total    int
	Approved int
}

// EstateAllocation is the unit breakdown for one estate.
type EstateAllocation struct {
	Name      string
	Total     int
	Available int
	Sold      int
	Booked    int
}

// PaymentProgress is a fixed proportional split of the approved application
// count. It is an estimate, not derived from actual payment records.
type PaymentProgress struct {
	Pending int
	Partial int
	Full    int
}

// Stats is the admin dashboard snapshot.
type Stats struct {
	TotalApplications        int
	PendingApplications      int
	ApprovedApplications     int
	RejectedApplications     int
	TotalSales               int64
	ReceiptsIssued           int
	MonthlyApplications      []MonthBucket
	EstateAllocations        []EstateAllocation
	EstimatedPaymentProgress PaymentProgress
}
