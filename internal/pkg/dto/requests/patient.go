package requests

type ListPatients struct {
	Search   string
	Filter   string
	Page     int
	PageSize int
}
