package models

// Employee is a bookable member of staff.
type Employee struct {
	ID         string `bson:"id" json:"id"`
	BusinessID string `bson:"businessId" json:"businessId"`
	Name       string `bson:"name" json:"name"`
	Surname    string `bson:"surname" json:"surname"`
	Role       string `bson:"role,omitempty" json:"role,omitempty"`
	IsActive   bool   `bson:"isActive" json:"isActive"`
}

// FullName returns the display name used in employee pick lists.
func (e Employee) FullName() string {
	if e.Surname == "" {
		return e.Name
	}
	return e.Name + " " + e.Surname
}

// BreakInterval is a pause inside a working-hours window, "HH:MM" bounds.
type BreakInterval struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// WorkingHoursRule defines when an employee is bookable on a given weekday.
// DayOfWeek follows time.Weekday numbering: 0=Sunday .. 6=Saturday.
type WorkingHoursRule struct {
	ID         string          `bson:"id" json:"id"`
	EmployeeID string          `bson:"employeeId" json:"employeeId"`
	DayOfWeek  int             `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime  string          `bson:"startTime" json:"startTime"`
	EndTime    string          `bson:"endTime" json:"endTime"`
	Breaks     []BreakInterval `bson:"breaks,omitempty" json:"breaks,omitempty"`
}
