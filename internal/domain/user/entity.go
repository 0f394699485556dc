package user

type User struct {
	ID             int64
	Email          string
	FullName       *string
	HashedPassword string
	IsActive       bool
}

// NewUser is the insert payload; ID and IsActive are assigned by the store.
type NewUser struct {
	Email          string
	FullName       *string
	HashedPassword string
}
