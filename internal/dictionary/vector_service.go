package dictionary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// DictionaryRepository defines the interface needed by VectorService
type DictionaryRepository interface {
	GetDictionaryAttributeByID(ctx context.Context, id string) (*Attribute, error)
	GetAllDictionaryAttributes(ctx context.Context) ([]Attribute, error)
}

// VectorService provides vector generation and management for dictionary attributes
// This enables AI-based semantic search and discovery of attributes
type VectorService struct {
	// In a real implementation, this would integrate with embedding services like:
	// - OpenAI Embeddings API
	// - Sentence Transformers
	// - Custom embedding models
	// For now, we'll use a simple hash-based approach for demonstration
}

// NewVectorService creates a new vector service
func NewVectorService() *VectorService {
	return &VectorService{}
}

// GenerateVector creates a vector representation for an attribute
// In production, this would call an embedding service
func (v *VectorService) GenerateVector(ctx context.Context, attr *Attribute) (string, error) {
	// Create a text representation combining all searchable fields
	searchText := v.buildSearchText(attr)

	// For now, use a deterministic hash as a placeholder for actual embeddings
	// In production, replace this with actual embedding API calls
	vector := v.generateHashVector(searchText)

	return vector, nil
}

// GenerateVectorForText creates a vector for arbitrary text (for search queries)
func (v *VectorService) GenerateVectorForText(ctx context.Context, text string) (string, error) {
	return v.generateHashVector(text), nil
}

// RegenerateAllVectors prints the regeneration steps; it fetches no attributes
// and writes no vectors
func (v *VectorService) RegenerateAllVectors(ctx context.Context, repo DictionaryRepository) error {
	// This would be the function to call when regenerating the vector database

	// Get all attributes (you'd need to implement this in your repository)
	// For now, this is a placeholder implementation

	fmt.Println("🔄 Starting vector regeneration for all dictionary attributes...")

	// In a real implementation:
	// 1. Fetch all attributes from the dictionary table
	// 2. Generate vectors for each attribute
	// 3. Update the vector field in the database
	// 4. Handle batch processing for large datasets

	fmt.Println("⚡ Note: This is a placeholder implementation.")
	fmt.Println("   In production, this would:")
	fmt.Println("   1. Fetch all attributes from dictionary table")
	fmt.Println("   2. Call embedding service (OpenAI, etc.) for each attribute")
	fmt.Println("   3. Update vector field in database")
	fmt.Println("   4. Handle rate limiting and batch processing")

	return nil
}

// SearchSimilarAttributes hashes the search text and prints it; no search is
// run and the returned list is always empty
func (v *VectorService) SearchSimilarAttributes(ctx context.Context, repo DictionaryRepository, searchText string, limit int) ([]*Attribute, error) {
	// Generate vector for search text
	searchVector, err := v.GenerateVectorForText(ctx, searchText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate search vector: %w", err)
	}

	// In production, this would use vector similarity search (cosine similarity, etc.)
	// For now, we'll do simple text matching as a placeholder

	fmt.Printf("🔍 Searching for attributes similar to: %s\n", searchText)
	fmt.Printf("📊 Search vector (hash): %s\n", searchVector[:16]+"...")

	// Placeholder result - in production this would query the database
	// using vector similarity functions
	return []*Attribute{}, nil
}

// buildSearchText creates a comprehensive text representation of an attribute
func (v *VectorService) buildSearchText(attr *Attribute) string {
	var parts []string

	// Include the attribute name (most important)
	if attr.Name != "" {
		parts = append(parts, attr.Name)
	}

	// Include the description
	if attr.LongDescription != "" {
		parts = append(parts, attr.LongDescription)
	}

	// Include the domain
	if attr.Domain != "" {
		parts = append(parts, attr.Domain)
	}

	// Include the group
	if attr.GroupID != "" {
		parts = append(parts, attr.GroupID)
	}

	// Include mask/type information
	if attr.Mask != "" {
		parts = append(parts, attr.Mask)
	}

	// Include source information (convert to string)
	if attr.Source.Primary != "" {
		parts = append(parts, attr.Source.Primary)
	}

	// Include sink information
	if attr.Sink.Primary != "" {
		parts = append(parts, attr.Sink.Primary)
	}

	return strings.Join(parts, " ")
}

// generateHashVector creates a deterministic hash-based vector
// This is a placeholder for actual embedding generation
func (v *VectorService) generateHashVector(text string) string {
	// Normalize the text
	normalized := strings.ToLower(strings.TrimSpace(text))

	// Generate SHA256 hash
	hash := sha256.Sum256([]byte(normalized))

	// Convert to hex string (in production, this would be actual embeddings)
	return hex.EncodeToString(hash[:])
}

// UpdateAttributeVector loads an attribute and sets a freshly computed vector on
// the loaded copy; the vector is not written back to the repository
func (v *VectorService) UpdateAttributeVector(ctx context.Context, repo DictionaryRepository, attributeID string) error {
	// Get the attribute
	attr, err := repo.GetDictionaryAttributeByID(ctx, attributeID)
	if err != nil {
		return fmt.Errorf("failed to get attribute %s: %w", attributeID, err)
	}

	// Generate new vector
	vector, err := v.GenerateVector(ctx, attr)
	if err != nil {
		return fmt.Errorf("failed to generate vector: %w", err)
	}

	// Update the attribute with new vector
	attr.Vector = vector

	// Save back to database (you'd need to implement this in your repository)
	// err = repo.UpdateDictionaryAttribute(ctx, attr)
	fmt.Printf("✅ Updated vector for attribute %s (%s)\n", attr.Name, attributeID)

	return nil
}

// BatchUpdateVectors updates vectors for multiple attributes efficiently
func (v *VectorService) BatchUpdateVectors(ctx context.Context, repo DictionaryRepository, attributeIDs []string) error {
	fmt.Printf("🔄 Batch updating vectors for %d attributes...\n", len(attributeIDs))

	for i, id := range attributeIDs {
		if err := v.UpdateAttributeVector(ctx, repo, id); err != nil {
			return fmt.Errorf("failed to update vector for attribute %s: %w", id, err)
		}

		// Progress indicator
		if (i+1)%10 == 0 || i == len(attributeIDs)-1 {
			fmt.Printf("📊 Progress: %d/%d attributes processed\n", i+1, len(attributeIDs))
		}
	}

	return nil
}

// ValidateVectorIntegrity prints start and completion messages; no attribute
// is checked and it always returns nil
func (v *VectorService) ValidateVectorIntegrity(ctx context.Context, repo DictionaryRepository) error {
	fmt.Println("🔍 Validating vector integrity...")

	// In production, this would:
	// 1. Query all attributes from dictionary table
	// 2. Check which ones have missing or invalid vectors
	// 3. Report statistics
	// 4. Optionally regenerate missing vectors

	fmt.Println("✅ Vector integrity validation completed")
	return nil
}

// GetVectorStats returns a VectorStats with every count at zero; the
// repository is not queried
func (v *VectorService) GetVectorStats(ctx context.Context, repo DictionaryRepository) (*VectorStats, error) {
	return &VectorStats{
		TotalAttributes:         0, // Would be populated from database
		AttributesWithVector:    0,
		AttributesWithoutVector: 0,
		LastUpdate:              nil,
	}, nil
}

// VectorStats provides statistics about vector coverage
type VectorStats struct {
	TotalAttributes         int     `json:"total_attributes"`
	AttributesWithVector    int     `json:"attributes_with_vector"`
	AttributesWithoutVector int     `json:"attributes_without_vector"`
	LastUpdate              *string `json:"last_update,omitempty"`
}

// ==============================================================================
// CLI Integration Functions - These would be called from CLI commands
// ==============================================================================
