// Package toon implements TOON, a compact indentation-based text encoding
// of the JSON data model, optimized for consumption by language models.
//
// TOON trades JSON's punctuation for indentation and, where an array holds
// homogeneous flat records, a CSV-like tabular layout:
//
//	users[2]{id,name,role}:
//	  1,Alice,admin
//	  2,Bob,user
//
// Nesting is expressed by indentation; mixed or non-uniform arrays fall
// back to a generic one-element-per-line layout:
//
//	mixed[4]:
//	  1
//	  string
//	  true
//	  null
//
// # Data Model
//
// Values form a closed tagged variant mirroring JSON: null, bool, number,
// string, object (ordered fields), array. Objects preserve insertion order.
//
// # Scalar Quoting
//
// The only escaping transformation is CSV-style: a string containing a
// comma, a double quote, or a newline is wrapped in double quotes with
// interior quotes doubled (" -> ""). There is no backslash escaping.
// Newlines travel raw inside the quotes, so a quoted scalar may span
// several physical lines; the decoder rejoins them until the quotes
// balance.
//
// # Known Limitations
//
// Keys outside [A-Za-z0-9_]+ cannot be represented by the line grammar and
// will not survive a decode. Bare strings that look like numbers or the
// literals null/true/false decode as those types; this collapse is part of
// the format. Adjacent object elements of a generic (non-tabular) array
// merge on decode, since the grammar carries no element separator.
//
// # Concurrency
//
// Encode and Decode are pure functions over their inputs and are safe to
// call concurrently on disjoint values.
package toon
