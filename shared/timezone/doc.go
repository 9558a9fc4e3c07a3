// Package timezone holds the set of timezone identifiers the bot recognises.
//
// Usage Examples:
//
//  1. Validating user input before it is stored:
//     zones := timezone.New(timezone.EmbeddedNames())
//     zones.IsValid("US/Eastern")   // true
//     zones.IsValid("us/eastern")   // false, matching is exact
//
//  2. Resolving a stored identifier when rendering a report:
//     loc, err := zones.Location("Europe/London")
//
//  3. Reading the set from a zoneinfo tree instead of the embedded list:
//     names, err := timezone.NamesFromDir("/usr/share/zoneinfo")
//
// The embedded list is zones.txt, taken from the IANA database that ships with
// the Go toolchain. Location data comes from time/tzdata, so resolution does not
// depend on the host having a zoneinfo directory.
package timezone
