// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func timePtr(s string) *time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return &t
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		input   string
		want    Visibility
		wantErr bool
	}{
		{"visible", VisibilityVisible, false},
		{"friends", VisibilityFriends, false},
		{"hidden", VisibilityHidden, false},
		{" Hidden ", VisibilityHidden, false},
		{"friends-only", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVisibility(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVisibility_Next(t *testing.T) {
	assert.Equal(t, VisibilityFriends, VisibilityVisible.Next())
	assert.Equal(t, VisibilityHidden, VisibilityFriends.Next())
	assert.Equal(t, VisibilityVisible, VisibilityHidden.Next())
	assert.Equal(t, VisibilityVisible, Visibility("bogus").Next())
}

func TestGroup_UnmarshalRemotePayload(t *testing.T) {
	payload := `[
		{"groupId":"grp_1","name":"Alpha","description":"","iconUrl":"https://img/1.png","memberCount":12,
		 "memberVisibility":"visible","isRepresenting":true,"createdAt":"2024-01-02T03:04:05Z"},
		{"groupId":"grp_2","name":"Beta","memberVisibility":"hidden"}
	]`

	var groups []Group
	require.NoError(t, json.Unmarshal([]byte(payload), &groups))
	require.Len(t, groups, 2)

	assert.Equal(t, "grp_1", groups[0].ID)
	assert.Equal(t, VisibilityVisible, groups[0].Visibility)
	assert.True(t, groups[0].IsRepresenting)
	require.NotNil(t, groups[0].MemberCount)
	assert.Equal(t, 12, *groups[0].MemberCount)
	require.NotNil(t, groups[0].CreatedAt)

	assert.False(t, groups[1].IsRepresenting, "missing isRepresenting decodes as false")
	assert.Nil(t, groups[1].MemberCount)
	assert.Nil(t, groups[1].CreatedAt)
}

func TestGroup_UnmarshalRejectsUnknownVisibility(t *testing.T) {
	var g Group
	err := json.Unmarshal([]byte(`{"groupId":"grp_1","memberVisibility":"public"}`), &g)
	assert.Error(t, err)
}

func TestCloneGroups_IsDeep(t *testing.T) {
	original := []Group{{ID: "grp_1", MemberCount: intPtr(3), CreatedAt: timePtr("2024-01-01T00:00:00Z")}}
	clone := CloneGroups(original)

	*clone[0].MemberCount = 99
	clone[0].IsRepresenting = true

	assert.Equal(t, 3, *original[0].MemberCount)
	assert.False(t, original[0].IsRepresenting)
	assert.Nil(t, CloneGroups(nil))
}

func TestRepresentedGroup(t *testing.T) {
	groups := []Group{{ID: "a"}, {ID: "b", IsRepresenting: true}}
	g, ok := RepresentedGroup(groups)
	assert.True(t, ok)
	assert.Equal(t, "b", g.ID)

	_, ok = RepresentedGroup([]Group{{ID: "a"}})
	assert.False(t, ok)
}

func TestFilterGroups(t *testing.T) {
	groups := []Group{
		{ID: "1", Name: "Photography Club", MemberCount: intPtr(50), CreatedAt: timePtr("2023-05-01T00:00:00Z")},
		{ID: "2", Name: "avatar makers", MemberCount: intPtr(500)},
		{ID: "3", Name: "Photon Labs", CreatedAt: timePtr("2021-01-01T00:00:00Z")},
		{ID: "4", Name: "Dance Hall", MemberCount: intPtr(5), CreatedAt: timePtr("2024-03-01T00:00:00Z")},
	}

	ids := func(gs []Group) []string {
		out := make([]string, len(gs))
		for i, g := range gs {
			out[i] = g.ID
		}
		return out
	}

	tests := []struct {
		name   string
		filter *GroupFilter
		want   []string
	}{
		{"nil filter keeps input", nil, []string{"1", "2", "3", "4"}},
		{"name ascending", &GroupFilter{SortBy: SortByName}, []string{"2", "4", "1", "3"}},
		{"name descending", &GroupFilter{SortBy: SortByName, Descending: true}, []string{"3", "1", "4", "2"}},
		{"substring case-insensitive", &GroupFilter{Query: "PHOTO"}, []string{"1", "3"}},
		{"member count ascending, missing last", &GroupFilter{SortBy: SortByMemberCount}, []string{"4", "1", "2", "3"}},
		{"member count descending, missing last", &GroupFilter{SortBy: SortByMemberCount, Descending: true}, []string{"2", "1", "4", "3"}},
		{"created ascending, missing last", &GroupFilter{SortBy: SortByCreatedAt}, []string{"3", "1", "4", "2"}},
		{"no match", &GroupFilter{Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterGroups(groups, tt.filter)))
		})
	}
}

func TestFilterGroups_Fuzzy(t *testing.T) {
	groups := []Group{
		{ID: "1", Name: "Photography Club"},
		{ID: "2", Name: "Dance Hall"},
		{ID: "3", Name: "Photon Labs"},
	}

	got := FilterGroups(groups, &GroupFilter{Query: "phclb", Fuzzy: true})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestParseGroupSortBy(t *testing.T) {
	got, err := ParseGroupSortBy("")
	require.NoError(t, err)
	assert.Equal(t, SortByName, got)

	got, err = ParseGroupSortBy("memberCount")
	require.NoError(t, err)
	assert.Equal(t, SortByMemberCount, got)

	_, err = ParseGroupSortBy("size")
	assert.Error(t, err)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "system", s.UI.Theme)
	assert.Equal(t, "ja", s.UI.Language)
	assert.True(t, s.Update.CheckOnStartup)
	assert.False(t, s.Update.IncludePrerelease)
}

func TestUserInfo_Name(t *testing.T) {
	assert.Equal(t, "Display", (&UserInfo{ID: "usr_1", Username: "user", DisplayName: "Display"}).Name())
	assert.Equal(t, "user", (&UserInfo{ID: "usr_1", Username: "user"}).Name())
	assert.Equal(t, "usr_1", (&UserInfo{ID: "usr_1"}).Name())
	var nilUser *UserInfo
	assert.Equal(t, "", nilUser.Name())
}
