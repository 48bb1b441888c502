package output

// DefaultAssumptions lists key modeling assumptions rendered in console reports.
var DefaultAssumptions = []string{
	"Yields are simple annual rates; monthly income is a twelfth of the yearly figure",
	"Deposit interest has 10% withheld as advance income tax unless the holder is exempt",
	"Savings interest accrues monthly on a positive balance at a twelfth of the annual rate",
	"A 10% levy is set aside from each month's positive inflow",
	"Fund projections withdraw a share of each year's interest and compound the rest",
	"Tax brackets are held constant across projection years",
}
