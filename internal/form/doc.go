// Package form holds the editable state and validation rules of reel's
// input screens: sign-in, registration, profile and the movie editor.
//
// Validation runs through go-playground/validator with a few custom tags
// (emailshape, phone, releaseyear); each failing field is reported once with
// the message the screen shows beside it.
package form
