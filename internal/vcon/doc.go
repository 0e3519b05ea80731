// Package vcon provides a loose-typed view over parsed vCon JSON documents.
//
// # Overview
//
// vCon files in the wild are frequently malformed: fields missing, fields
// carrying the wrong JSON type, arrays holding non-object elements. The rule
// engine has to see all of that and turn it into findings rather than crash,
// so nothing in this package decodes into rigid structs. A Document wraps the
// generic value tree produced by the JSON decoder, and every field accessor
// reports one of three states: the field is absent, present with the wrong
// type, or present with the expected type.
//
// # Usage
//
//	doc, err := vcon.ReadFile("call.json")
//	if err != nil {
//	    return err
//	}
//	if v, p := doc.String("vcon"); p == vcon.Present {
//	    fmt.Println("version:", v)
//	}
//
// Validation lives in the rules package; migration in the migrate package.
// This package only models shape.
package vcon
