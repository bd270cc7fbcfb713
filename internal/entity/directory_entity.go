package entity

// DirectoryUser is the profile record published into the shared user
// directory. JSON names match the wire layout of the users tree.
type DirectoryUser struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
