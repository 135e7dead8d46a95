// Package pipedata maps a nominal pipe size and schedule to an internal
// diameter.
//
// The default Table is decoded once from an embedded YAML file
// (schedules.yaml) holding outside diameters and wall thicknesses for NPS
// 1/8 through 12. Custom tables in the same format can be loaded with Load or
// Parse. Internal diameter is od − 2·wall.
//
// Nominal sizes are accepted as fractions or decimals ("1-1/2", "1 1/2",
// "1.5"); schedules are accepted with or without a "sch"/"schedule" prefix and
// in any case ("sch 40", "40", "std").
//
// Errors:
//
//	ErrUnknownSize     - nominal size is not in the table.
//	ErrUnknownSchedule - schedule is not listed for that size.
//	ErrInvalidTable    - a table failed to decode or holds non-physical values.
package pipedata
