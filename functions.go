package dataverse

import (
	"context"
	"fmt"
)

// TargetFieldType controls which attribute values InitializeFrom copies.
type TargetFieldType int

const (
	// TargetFieldTypeAll copies all possible attribute values.
	TargetFieldTypeAll TargetFieldType = iota
	// TargetFieldTypeCreate copies attribute values valid for create.
	TargetFieldTypeCreate
	// TargetFieldTypeUpdate copies attribute values valid for update.
	TargetFieldTypeUpdate
	// TargetFieldTypeRead copies attribute values valid for read.
	TargetFieldTypeRead
)

// EntityFilter selects how much metadata the Retrieve*Entities functions
// return for each entity.
type EntityFilter int

const (
	EntityFilterEntity        EntityFilter = 1
	EntityFilterAttributes    EntityFilter = 2
	EntityFilterPrivileges    EntityFilter = 4
	EntityFilterRelationships EntityFilter = 8
	EntityFilterAll           EntityFilter = 16
)

// Functions wraps the predefined Web API functions. Each call resets the
// client's query options before running.
type Functions struct {
	client *Client
}

func (f *Functions) get(ctx context.Context, action string) ([]map[string]any, error) {
	f.client.Reset()
	f.client.query.SetAction(action)

	response, err := f.client.Get(ctx, GetOptions{})
	if err != nil {
		return nil, err
	}
	return response.Data, nil
}

// WhoAmI retrieves the system user id the client is running as.
func (f *Functions) WhoAmI(ctx context.Context) ([]map[string]any, error) {
	return f.get(ctx, "WhoAmI()")
}

// ExpandCalendar converts calendar rules to available time blocks for the
// given period.
func (f *Functions) ExpandCalendar(ctx context.Context, start, end string) ([]map[string]any, error) {
	return f.get(ctx, fmt.Sprintf("ExpandCalendar(Start='%s',End='%s')", start, end))
}

// Address is the input to FormatAddress.
type Address struct {
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// FormatAddress builds the full address according to country and regional
// format requirements.
func (f *Functions) FormatAddress(ctx context.Context, address Address) ([]map[string]any, error) {
	return f.get(ctx, fmt.Sprintf(
		"FormatAddress(Line1='%s',City='%s',StateOrProvince='%s',PostalCode='%s',Country='%s')",
		address.Line1, address.City, address.State, address.PostalCode, address.Country,
	))
}

// GetDefaultPriceLevel retrieves the default price list for the current user
// based on the user's territory.
func (f *Functions) GetDefaultPriceLevel(ctx context.Context) ([]map[string]any, error) {
	return f.get(ctx, "GetDefaultPriceLevel()")
}

// GetValidManyToMany retrieves the entities that can participate in a
// many-to-many relationship.
func (f *Functions) GetValidManyToMany(ctx context.Context) ([]map[string]any, error) {
	return f.get(ctx, "GetValidManyToMany()")
}

// GetValidReferencedEntities retrieves the entities valid as the primary
// entity from the given entity in a one-to-many relationship.
func (f *Functions) GetValidReferencedEntities(ctx context.Context, name string) ([]map[string]any, error) {
	return f.get(ctx, fmt.Sprintf("GetValidReferencedEntities(ReferencingEntityName='%s')", name))
}

// GetValidReferencingEntities retrieves the entities valid as the related
// entity to the given entity in a one-to-many relationship.
func (f *Functions) GetValidReferencingEntities(ctx context.Context, name string) ([]map[string]any, error) {
	return f.get(ctx, fmt.Sprintf("GetValidReferencingEntities(ReferencingEntityName='%s')", name))
}

// InitializeFrom initializes a new record from an existing one.
func (f *Functions) InitializeFrom(ctx context.Context, table, rowID, entityName string, fieldType TargetFieldType) ([]map[string]any, error) {
	return f.get(ctx, fmt.Sprintf(
		"InitializeFrom(EntityMoniker=@tid,TargetEntityName='%s',TargetFieldType=%d)?@tid={'@odata.id':'%s(%s)'}",
		entityName, fieldType, table, rowID,
	))
}

// RetrieveAllEntities retrieves metadata about all entities. Set
// asIfPublished to include unpublished metadata.
func (f *Functions) RetrieveAllEntities(ctx context.Context, filter EntityFilter, asIfPublished bool) ([]map[string]any, error) {
	return f.get(ctx, fmt.Sprintf(
		"RetrieveAllEntities(EntityFilters=%d,RetrieveAsIfPublished=%t)", filter, asIfPublished,
	))
}

// RetrieveEntity retrieves metadata for one entity.
func (f *Functions) RetrieveEntity(ctx context.Context, rowID, name string, filter EntityFilter, asIfPublished bool) ([]map[string]any, error) {
	return f.get(ctx, fmt.Sprintf(
		"RetrieveEntity(EntityFilters=%d,LogicalName='%s',MetadataId=%s,RetrieveAsIfPublished=%t)",
		filter, name, rowID, asIfPublished,
	))
}

// RetrieveDuplicates detects and retrieves duplicates of the given row.
func (f *Functions) RetrieveDuplicates(ctx context.Context, table, rowID, entityName string) ([]map[string]any, error) {
	return f.get(ctx, fmt.Sprintf(
		"RetrieveDuplicates(BusinessEntity=@tid,MatchingEntityName='%s')?@tid={'@odata.id':'%s(%s)'}",
		entityName, table, rowID,
	))
}
