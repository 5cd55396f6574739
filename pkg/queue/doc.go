// Package queue implements the schema-constrained record store behind tqb.
//
// # Overview
//
// A task queue is a single CSV file holding three sections: free-form config
// entries, one constraint row per column, and the tasks themselves. The
// package decodes the whole file into a Collection, lets a command mutate it
// in memory, and encodes it back in full.
//
// # Core Concepts
//
// Rules describe one column each: an optional type (int or bool), a closed set
// of allowed values (Variant) with optional prefix completion (Autofill), a
// default, a display width, glob-to-colour rendering pairs, and a Role.
//
// Roles tell the tool which column is the primary key, which one mark updates,
// which one flags archived tasks and which one holds the description. Role
// lookups return the first matching column in column order.
//
// Records store every value as text. Writes go through a fixed pipeline:
// default, then variant canonicalization, then type coercion. Records never
// point back at their collection; schema-dependent operations take the
// collection as an argument.
//
// # File Format
//
//	# BEGIN CONFIG
//	Key,Value,Opt
//	alias,ls-all,ls --all
//	# END CONFIG
//	# BEGIN CONSTRAINTS
//	HeaderName,Type,Variant,Default,ColWidth,Colours,Role,Autofill,Hide,AutoHeader
//	Id,int,,,,*=BLUE,PrimaryKey,False,False,False
//	# END CONSTRAINTS
//	Id,Task
//	1,buy milk
//
// # Usage Example
//
//	c, err := queue.Load("taskqueue.csv")
//	if err != nil {
//		return err
//	}
//
//	rec, err := queue.NewRecord("buy milk", c)
//	if err != nil {
//		return err
//	}
//	c.AddRecord(rec)
//
//	return queue.Save("taskqueue.csv", c)
package queue
