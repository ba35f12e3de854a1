package domain

import "fmt"

// View enumerates the screens the application shell can show. The set is
// closed; switches over it are expected to be exhaustive.
type View string

const (
	ViewSuperAdmin    View = "SUPER_ADMIN"
	ViewDashboard     View = "DASHBOARD"
	ViewMembers       View = "MEMBERS"
	ViewVisitors      View = "VISITORS"
	ViewSoulTracking  View = "SOUL_TRACKING"
	ViewAttendance    View = "ATTENDANCE"
	ViewFinance       View = "FINANCE"
	ViewBulkSMS       View = "BULK_SMS"
	ViewEquipment     View = "EQUIPMENT"
	ViewReports       View = "REPORTS"
	ViewSettings      View = "SETTINGS"
	ViewNotifications View = "NOTIFICATIONS"
)

// Views lists every navigable view in sidebar order.
var Views = []View{
	ViewSuperAdmin,
	ViewDashboard,
	ViewNotifications,
	ViewMembers,
	ViewVisitors,
	ViewAttendance,
	ViewSoulTracking,
	ViewFinance,
	ViewBulkSMS,
	ViewEquipment,
	ViewReports,
	ViewSettings,
}

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	switch v {
	case ViewSuperAdmin, ViewDashboard, ViewMembers, ViewVisitors,
		ViewSoulTracking, ViewAttendance, ViewFinance, ViewBulkSMS,
		ViewEquipment, ViewReports, ViewSettings, ViewNotifications:
		return true
	}
	return false
}

// Label returns the human-readable name shown in navigation and audit trails.
func (v View) Label() string {
	switch v {
	case ViewSuperAdmin:
		return "Super Admin"
	case ViewDashboard:
		return "Dashboard"
	case ViewMembers:
		return "Members"
	case ViewVisitors:
		return "Visitors"
	case ViewSoulTracking:
		return "Track Soul"
	case ViewAttendance:
		return "Attendance"
	case ViewFinance:
		return "Finance"
	case ViewBulkSMS:
		return "Communications"
	case ViewEquipment:
		return "Equipment"
	case ViewReports:
		return "Reports"
	case ViewSettings:
		return "System & Security"
	case ViewNotifications:
		return "Notifications"
	}
	return string(v)
}

// ParseView converts a wire identifier into a View.
func ParseView(s string) (View, error) {
	v := View(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown view %q", s)
	}
	return v, nil
}
