// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"fmt"
	"net/url"
)

// API endpoints constants
const (
	// EndpointCurrentUser returns the user owning the auth cookie
	EndpointCurrentUser = "/auth/user"

	// EndpointUserGroupsTemplate lists every group the user belongs to
	EndpointUserGroupsTemplate = "/users/%s/groups"

	// EndpointRepresentedGroupTemplate returns the group the user represents
	EndpointRepresentedGroupTemplate = "/users/%s/groups/represented"

	// EndpointGroupMemberTemplate updates the user's membership of a group
	EndpointGroupMemberTemplate = "/groups/%s/members/%s"

	// EndpointGroupRepresentationTemplate sets or clears representation of a group
	EndpointGroupRepresentationTemplate = "/groups/%s/representation"
)

// UserGroupsURL builds the path listing a user's groups
func UserGroupsURL(userID string) string {
	return fmt.Sprintf(EndpointUserGroupsTemplate, url.PathEscape(userID))
}

// RepresentedGroupURL builds the path for a user's represented group
func RepresentedGroupURL(userID string) string {
	return fmt.Sprintf(EndpointRepresentedGroupTemplate, url.PathEscape(userID))
}

// GroupMemberURL builds the path for one membership
func GroupMemberURL(groupID, userID string) string {
	return fmt.Sprintf(EndpointGroupMemberTemplate, url.PathEscape(groupID), url.PathEscape(userID))
}

// GroupRepresentationURL builds the path for a group's representation flag
func GroupRepresentationURL(groupID string) string {
	return fmt.Sprintf(EndpointGroupRepresentationTemplate, url.PathEscape(groupID))
}
