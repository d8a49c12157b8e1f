package domain

type OperationKind string

const (
	OperationCreate OperationKind = "create"
	OperationUpdate OperationKind = "update"
	OperationDelete OperationKind = "delete"
)

// SyncOperation is one planned platform mutation. The set of
// implementations is closed: CreateOperation, UpdateOperation and
// DeleteOperation.
type SyncOperation interface {
	Kind() OperationKind
	Entity() EntityType
	EntityID() string
	isSyncOperation()
}

// CreateOperation creates an entity under ParentID (empty for campaigns).
// Exactly one of the entity pointers is set, matching Type.
type CreateOperation struct {
	Type       EntityType
	CampaignID string
	ParentID   string
	Campaign   *Campaign
	AdGroup    *AdGroup
	Ad         *Ad
	Keyword    *Keyword
}

// UpdateOperation pushes changed fields of an entity that already exists
// on the platform.
type UpdateOperation struct {
	Type       EntityType
	CampaignID string
	ParentID   string
	Changes    []FieldChange
	Campaign   *Campaign
	AdGroup    *AdGroup
	Ad         *Ad
	Keyword    *Keyword
}

// DeleteOperation removes an entity by its platform id. KeepLocal is set
// when the entity moved to another parent: only the platform copy goes and
// the local row is recreated under its new parent.
type DeleteOperation struct {
	Type       EntityType
	ID         string
	CampaignID string
	PlatformID string
	KeepLocal  bool
}

func (CreateOperation) Kind() OperationKind { return OperationCreate }
func (UpdateOperation) Kind() OperationKind { return OperationUpdate }
func (DeleteOperation) Kind() OperationKind { return OperationDelete }

func (o CreateOperation) Entity() EntityType { return o.Type }
func (o UpdateOperation) Entity() EntityType { return o.Type }
func (o DeleteOperation) Entity() EntityType { return o.Type }

func (o CreateOperation) EntityID() string { return entityID(o.Campaign, o.AdGroup, o.Ad, o.Keyword) }
func (o UpdateOperation) EntityID() string { return entityID(o.Campaign, o.AdGroup, o.Ad, o.Keyword) }
func (o DeleteOperation) EntityID() string { return o.ID }

func (CreateOperation) isSyncOperation() {}
func (UpdateOperation) isSyncOperation() {}
func (DeleteOperation) isSyncOperation() {}

func entityID(c *Campaign, g *AdGroup, a *Ad, k *Keyword) string {
	switch {
	case c != nil:
		return c.ID
	case g != nil:
		return g.ID
	case a != nil:
		return a.ID
	case k != nil:
		return k.ID
	}
	return ""
}
