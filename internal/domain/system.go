package domain

import "time"

// SystemConfig is the singleton record written once by onboarding. Its
// presence is what makes the platform count as initialized.
type SystemConfig struct {
	IsInitialized bool       `json:"isInitialized"`
	SuperAdminID  string     `json:"superAdminId"`
	Version       string     `json:"version"`
	LastBackup    *time.Time `json:"lastBackup,omitempty"`
}
