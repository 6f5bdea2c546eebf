package mapper

import "churn-insights-go/internal/types"

// fieldAliases lists the accepted column labels per canonical field, in
// priority order. Matching is exact-string against the sample row's keys;
// case variants that occur in real exports are enumerated explicitly rather
// than folded, so the mapping stays auditable against the alias table.
var fieldAliases = map[string][]string{
	types.FieldID: {
		"id", "ID", "Id", "user_id", "userId", "userid", "User ID", "uid",
	},
	types.FieldName: {
		"name", "Name", "user_name", "userName", "username", "full_name",
		"fullName", "Full Name", "User Name",
	},
	types.FieldEmail: {
		"email", "Email", "EMAIL", "email_address", "emailAddress",
		"mail", "Email Address",
	},
	types.FieldLastLogin: {
		"last_login", "lastLogin", "Last Login", "last_seen", "lastSeen",
		"last_active", "lastActive", "last_login_date",
	},
	types.FieldRegisteredDate: {
		"registered_date", "registeredDate", "Registered Date", "signup_date",
		"signupDate", "created_at", "createdAt", "registration_date",
		"join_date", "joinDate",
	},
	types.FieldActivityScore: {
		"activity_score", "activityScore", "Activity Score", "activity",
		"engagement", "engagement_score", "engagementScore", "usage_score",
		"score",
	},
}

// canonicalFields fixes the iteration order so the map is built the same
// way on every call.
var canonicalFields = []string{
	types.FieldID,
	types.FieldName,
	types.FieldEmail,
	types.FieldLastLogin,
	types.FieldRegisteredDate,
	types.FieldActivityScore,
}

// MapColumns resolves each canonical field to the first alias whose key
// exists in the sample row. The cell value may be empty; only key presence
// matters. Fields with no matching alias are left out of the map, which
// downstream code treats as "always synthesize".
func MapColumns(sample types.RawRow) types.FieldMap {
	fm := types.FieldMap{}
	for _, field := range canonicalFields {
		for _, alias := range fieldAliases[field] {
			if _, ok := sample[alias]; ok {
				fm[field] = alias
				break
			}
		}
	}
	return fm
}
