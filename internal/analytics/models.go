package analytics

type Totals struct {
	Users        int `json:"users"`
	PremiumUsers int `json:"premiumUsers"`
	Posts        int `json:"posts"`
	Bookings     int `json:"bookings"`
	Messages     int `json:"messages"`
	Places       int `json:"places"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type Report struct {
	Totals           Totals          `json:"totals"`
	PostsByLocation  []LocationCount `json:"postsByLocation"`
	BookingsByStatus []StatusCount   `json:"bookingsByStatus"`
	DailyActivity    []DayCount      `json:"dailyActivity"`
}
