package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_AbsentKeyStaysUnset(t *testing.T) {
	var patch ClientPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Amina"}`), &patch))

	assert.True(t, patch.Name.Set)
	assert.Equal(t, "Amina", patch.Name.Value)
	assert.False(t, patch.Email.Set)
	assert.False(t, patch.AssignedTo.Set)
	assert.False(t, patch.Empty())
}

func TestOptional_PresentNullIsSetWithZeroValue(t *testing.T) {
	var patch ClientPatch
	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to":null,"notes":null}`), &patch))

	assert.True(t, patch.AssignedTo.Set)
	assert.Nil(t, patch.AssignedTo.Value)
	assert.True(t, patch.Notes.Set)
	assert.Equal(t, "", patch.Notes.Value)
}

func TestOptional_EmptyStringIsAWrite(t *testing.T) {
	var patch ClientPatch
	require.NoError(t, json.Unmarshal([]byte(`{"phone":""}`), &patch))

	assert.True(t, patch.Phone.Set)
	assert.Equal(t, "", patch.Phone.Value)
}

func TestOptional_EmptyObjectMeansEmptyPatch(t *testing.T) {
	var clientPatch ClientPatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &clientPatch))
	assert.True(t, clientPatch.Empty())

	var propertyPatch PropertyPatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &propertyPatch))
	assert.True(t, propertyPatch.Empty())

	var servicePatch ServicePatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &servicePatch))
	assert.True(t, servicePatch.Empty())
}

func TestOptional_ListField(t *testing.T) {
	var patch PropertyPatch
	require.NoError(t, json.Unmarshal([]byte(`{"features":["pool","garden"]}`), &patch))

	assert.True(t, patch.Features.Set)
	assert.Equal(t, []string{"pool", "garden"}, patch.Features.Value)
	assert.False(t, patch.Images.Set)
}

func TestContactStatusRank_Ordering(t *testing.T) {
	assert.Less(t, ContactStatusRank[ContactStatusNew], ContactStatusRank[ContactStatusInProgress])
	assert.Less(t, ContactStatusRank[ContactStatusInProgress], ContactStatusRank[ContactStatusContacted])
	assert.Less(t, ContactStatusRank[ContactStatusContacted], ContactStatusRank[ContactStatusResolved])
	assert.Less(t, ContactStatusRank[ContactStatusResolved], ContactStatusRank[ContactStatusSpam])

	assert.True(t, IsValidContactStatus("in_progress"))
	assert.False(t, IsValidContactStatus("archived"))
}
