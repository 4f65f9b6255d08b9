package model

import "github.com/jsamuelsen11/guise/internal/domain"

// Value classes used by table columns and cell representation strategies.
var (
	ClassBoolean = domain.NewClass("boolean", domain.ClassObject)
	ClassNumber  = domain.NewClass("number", domain.ClassObject)
	ClassInteger = domain.NewClass("integer", ClassNumber)
	ClassDecimal = domain.NewClass("decimal", ClassNumber)
	ClassString  = domain.NewClass("string", domain.ClassObject)
	ClassTime    = domain.NewClass("time", domain.ClassObject)
)
