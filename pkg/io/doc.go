// Package io reads and writes profile reports as JSON or YAML.
//
// # Overview
//
// A report is a serialized [profile.Profile]. Unavailable values are written
// as null so that a reader can tell "unknown" from zero, and every
// unavailable field is explained in the "issues" list:
//
//	{
//	  "username": "octocat",
//	  "stars_total": 13,
//	  "projects_count": null,
//	  "issues": [
//	    {"field": "projects_count", "kind": "not_found", "message": "..."}
//	  ]
//	}
//
// # Formats
//
// [FormatFromPath] picks the format from a file extension (.json, .yaml,
// .yml). [Export] and [Import] use it to write and read report files;
// [Write] and [Read] work on any io.Writer or io.Reader.
//
//	err := io.Export(p, "octocat.yaml")
//	p, err := io.Import("octocat.yaml")
//
// Reports round-trip: importing an exported report yields the same profile,
// except for the underlying Go errors of issues, which are not serialized.
//
// [profile.Profile]: github.com/matzehuels/ghprofile/pkg/profile.Profile
package io
