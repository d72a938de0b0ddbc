package server

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"stubnest/models"
)

// validateVariableParameters warns (non-fatally) about options the declared
// type does not support. Warnings go to stderr; the request proceeds.
func validateVariableParameters(varConfig *models.VariableConfig) {
	switch varConfig.Type {
	case models.VarTypeUUID:
		if varConfig.Prefix != "" {
			log.Printf("Warning: UUID type doesn't support 'prefix' parameter. Ignoring this parameter.")
		}
		if varConfig.Min != nil {
			log.Printf("Warning: UUID type doesn't support 'min' parameter. Ignoring this parameter.")
		}
		if varConfig.Max != nil {
			log.Printf("Warning: UUID type doesn't support 'max' parameter. Ignoring this parameter.")
		}
	case models.VarTypeInteger:
		if varConfig.Prefix != "" {
			log.Printf("Warning: Integer type doesn't support 'prefix' parameter. Ignoring this parameter.")
		}
	case models.VarTypeString:
		if varConfig.Min != nil {
			log.Printf("Warning: String type doesn't support 'min' parameter. Ignoring this parameter.")
		}
		if varConfig.Max != nil {
			log.Printf("Warning: String type doesn't support 'max' parameter. Ignoring this parameter.")
		}
	default:
		if varConfig.Prefix != "" || varConfig.Min != nil || varConfig.Max != nil {
			log.Printf("Warning: Unknown variable type '%s'. Parameters may not be supported.", varConfig.Type)
		}
	}
}

// generateVariableValue produces a fresh JSON value for a variable
// declaration. Generation is independent per call; uniqueness rests on UUID
// entropy or on the declared min/max width.
func generateVariableValue(varConfig *models.VariableConfig) interface{} {
	validateVariableParameters(varConfig)

	switch varConfig.Type {
	case models.VarTypeUUID:
		return uuid.New().String()
	case models.VarTypeInteger:
		min := int64(0)
		if varConfig.Min != nil {
			min = *varConfig.Min
		}
		max := int64(math.MaxInt64)
		if varConfig.Max != nil {
			max = *varConfig.Max
		}

		if min > max {
			log.Printf("Warning: min value (%d) is greater than max value (%d). Using default range.", min, max)
			return int64(rand.Uint32())
		}
		span := uint64(max - min)
		if span == 0 {
			return min
		}
		if span == math.MaxUint64 {
			return int64(rand.Uint64())
		}
		return int64(rand.Uint64()%(span+1)) + min
	case models.VarTypeString:
		base := fmt.Sprintf("generated_%d", uint16(rand.Uint32()))
		if varConfig.Prefix != "" {
			return varConfig.Prefix + base
		}
		return base
	default:
		if varConfig.Default != nil {
			return varConfig.Default
		}
		return "default"
	}
}

// replaceVariables substitutes {name} placeholders from the generated
// variable map throughout a JSON tree.
func replaceVariables(value interface{}, variables map[string]interface{}) interface{} {
	return SubstitutePlaceholders(value, func(placeholder string) (interface{}, bool) {
		v, ok := variables[placeholder]
		return v, ok
	})
}
