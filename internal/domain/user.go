package domain

// User identifies an authenticated account
type User struct {
	ID          string
	Name        string
	DisplayName string
}
