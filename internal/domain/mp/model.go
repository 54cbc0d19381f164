package mp

import "context"

// MP is a member-of-parliament record. The core only reads these; full MP
// record management lives outside this service.
type MP struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Constituency string `json:"constituency"`
	Party        string `json:"party,omitempty"`
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*MP, error)
	List(ctx context.Context) ([]MP, error)
	// AssignUser points the user's assigned_mp_id at the MP.
	AssignUser(ctx context.Context, userID, mpID int64) error
}
