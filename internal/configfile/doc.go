// Package configfile reads and writes the JSON key/value documents that hold
// the API credential.
//
// Persistence model:
//   - Values are kept as raw JSON so keys this tool does not know about survive
//     a read-modify-write cycle unchanged.
//   - Writes go through a temp file in the target directory and a rename.
package configfile
