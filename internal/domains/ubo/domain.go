package ubo

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"dsl-ob-poc/internal/config"
	"dsl-ob-poc/internal/datastore"
	"dsl-ob-poc/internal/ubo/evaluate"
	"dsl-ob-poc/internal/ubo/registry"
	"dsl-ob-poc/internal/ubo/resolve"
)

// UBODomain implements Ultimate Beneficial Ownership functionality for the DSL-as-State system
type UBODomain struct {
	datastore datastore.DataStore

	// registryClient is lazily built the first time a DSL fragment names a
	// Czech registry ID (an "ico" field); entity-type-specific verbs that
	// never carry one (trusts, FinCEN control prongs) never touch it.
	registryClient *registry.Client
}

// NewUBODomain creates a new UBO domain instance
func NewUBODomain(ds datastore.DataStore) *UBODomain {
	return &UBODomain{
		datastore: ds,
	}
}

var dslFieldRe = func(field string) *regexp.Regexp {
	return regexp.MustCompile(`\(` + field + `\s+"([^"]*)"\)`)
}

// extractDSLField pulls a `(field "value")` s-expression out of a raw DSL
// fragment. The DSL dispatch in ExecuteDSL already works this way
// (strings.Contains on verb names); this extends the same light-touch
// parsing to verb arguments instead of requiring a full grammar walk.
func extractDSLField(dsl, field string) (string, bool) {
	m := dslFieldRe(field).FindStringSubmatch(dsl)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ensureRegistryClient lazily builds the ARES registry client shared by the
// Czech-registry-backed verbs, reusing the same connection string and cache
// schema as the standalone "ubo resolve" CLI command.
func (d *UBODomain) ensureRegistryClient() (*registry.Client, error) {
	if d.registryClient != nil {
		return d.registryClient, nil
	}

	db, err := sqlx.Connect("postgres", config.GetDataStoreConfig().ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ARES cache database: %w", err)
	}

	cache, err := registry.NewCache(db)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate ARES cache schema: %w", err)
	}

	d.registryClient = registry.NewClient(registry.DefaultConfig(), cache)
	return d.registryClient, nil
}

// ExecuteDSL processes UBO DSL commands and returns the resulting state
func (d *UBODomain) ExecuteDSL(ctx context.Context, dsl string) (map[string]interface{}, error) {
	// Parse and execute UBO DSL commands
	result := make(map[string]interface{})

	// Extract UBO commands from DSL
	if strings.Contains(dsl, "ubo.collect-entity-data") {
		entityData, err := d.executeCollectEntityData(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute collect-entity-data: %w", err)
		}
		result["entity_data"] = entityData
	}

	// Entity-type-specific workflows
	if strings.Contains(dsl, "ubo.identify-trust-parties") {
		trustParties, err := d.executeIdentifyTrustParties(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute identify-trust-parties: %w", err)
		}
		result["trust_parties"] = trustParties
	}

	if strings.Contains(dsl, "ubo.resolve-trust-ubos") {
		trustUBOs, err := d.executeResolveTrustUBOs(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute resolve-trust-ubos: %w", err)
		}
		result["trust_ubos"] = trustUBOs
	}

	if strings.Contains(dsl, "ubo.identify-ownership-prong") {
		ownershipProng, err := d.executeIdentifyOwnershipProng(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute identify-ownership-prong: %w", err)
		}
		result["ownership_prong"] = ownershipProng
	}

	if strings.Contains(dsl, "ubo.resolve-partnership-ubos") {
		partnershipUBOs, err := d.executeResolvePartnershipUBOs(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute resolve-partnership-ubos: %w", err)
		}
		result["partnership_ubos"] = partnershipUBOs
	}

	if strings.Contains(dsl, "ubo.recursive-entity-resolve") {
		recursiveResults, err := d.executeRecursiveEntityResolve(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute recursive-entity-resolve: %w", err)
		}
		result["recursive_results"] = recursiveResults
	}

	// FinCEN-specific Control Prong workflows
	if strings.Contains(dsl, "ubo.identify-fincen-control-roles") {
		finCenRoles, err := d.executeIdentifyFinCenControlRoles(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute identify-fincen-control-roles: %w", err)
		}
		result["fincen_control_roles"] = finCenRoles
	}

	if strings.Contains(dsl, "ubo.apply-fincen-control-prong") {
		finCenControlProng, err := d.executeApplyFinCenControlProng(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute apply-fincen-control-prong: %w", err)
		}
		result["fincen_control_prong"] = finCenControlProng
	}

	if strings.Contains(dsl, "ubo.get-ownership-structure") {
		ownershipStructure, err := d.executeGetOwnershipStructure(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute get-ownership-structure: %w", err)
		}
		result["ownership_structure"] = ownershipStructure
	}

	if strings.Contains(dsl, "ubo.resolve-ubos") {
		ubos, err := d.executeResolveUBOs(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute resolve-ubos: %w", err)
		}
		result["ubos"] = ubos
	}

	if strings.Contains(dsl, "ubo.verify-identity") {
		verificationResults, err := d.executeVerifyIdentity(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute verify-identity: %w", err)
		}
		result["verification"] = verificationResults
	}

	if strings.Contains(dsl, "ubo.screen-person") {
		screeningResults, err := d.executeScreenPerson(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute screen-person: %w", err)
		}
		result["screening"] = screeningResults
	}

	if strings.Contains(dsl, "ubo.assess-risk") {
		riskAssessment, err := d.executeAssessRisk(ctx, dsl)
		if err != nil {
			return nil, fmt.Errorf("failed to execute assess-risk: %w", err)
		}
		result["risk_assessment"] = riskAssessment
	}

	return result, nil
}

// executeCollectEntityData implements the entity data collection workflow
func (d *UBODomain) executeCollectEntityData(ctx context.Context, dsl string) (map[string]interface{}, error) {
	// Parse entity data from DSL
	result := map[string]interface{}{
		"status":       "collected",
		"entity_type":  "CORPORATION",
		"collected_at": time.Now(),
		"data_sources": []string{"CERTIFICATE_OF_INCORPORATION", "CORPORATE_REGISTRY"},
	}

	// In a real implementation, this would:
	// 1. Parse entity name and jurisdiction from DSL
	// 2. Query corporate registries and databases
	// 3. Collect comprehensive entity information
	// 4. Store in entity registry with appropriate metadata

	return result, nil
}

// executeGetOwnershipStructure implements the ownership structure retrieval
// workflow. When the DSL fragment names a Czech registry ID via an "ico"
// field, it resolves the real ownership tree against ARES; entities from
// other regulatory frameworks (FinCEN trusts, partnerships — there is no
// public Czech-registry equivalent to walk) fall back to the static
// placeholder shape the rest of this domain's mock verbs use.
func (d *UBODomain) executeGetOwnershipStructure(ctx context.Context, dsl string) (map[string]interface{}, error) {
	ico, ok := extractDSLField(dsl, "ico")
	if !ok {
		return d.mockOwnershipStructure(), nil
	}

	maxDepth := 25
	if raw, ok := extractDSLField(dsl, "depth_limit"); ok {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			maxDepth = v
		}
	}

	client, err := d.ensureRegistryClient()
	if err != nil {
		return nil, err
	}

	resolver := resolve.NewResolver(client)
	traceResult := resolver.Resolve(ctx, resolve.Options{RootID: ico, MaxDepth: maxDepth})

	var directShareholders []map[string]interface{}
	for _, line := range traceResult.Trace {
		if line.Depth != 1 || (line.Kind != resolve.KindCompanyOwner && line.Kind != resolve.KindPersonOwner) {
			continue
		}
		entry := map[string]interface{}{
			"shareholder_name": line.Text,
			"link_type":        "DIRECT_SHARE",
		}
		if line.EffectivePct != nil {
			entry["ownership_percentage"] = *line.EffectivePct
		}
		directShareholders = append(directShareholders, entry)
	}

	var warnings []map[string]interface{}
	for _, w := range traceResult.Warnings {
		warnings = append(warnings, map[string]interface{}{
			"kind": string(w.Kind),
			"ico":  w.Ico,
			"name": w.Name,
			"text": w.Text,
		})
	}

	return map[string]interface{}{
		"status": "mapped",
		"structure": map[string]interface{}{
			"direct_shareholders": directShareholders,
			"warnings":            warnings,
		},
		"source":    "ARES",
		"root_ico":  registry.NormalizeID(ico),
		"mapped_at": time.Now(),
	}, nil
}

// mockOwnershipStructure is the placeholder shape returned for entities
// that carry no Czech registry ID, e.g. the FinCEN/trust workflows this
// domain also serves, which have no public registry to resolve against.
func (d *UBODomain) mockOwnershipStructure() map[string]interface{} {
	return map[string]interface{}{
		"status": "mapped",
		"structure": map[string]interface{}{
			"direct_shareholders": []map[string]interface{}{
				{
					"shareholder_name":     "Parent Corp Ltd",
					"ownership_percentage": 75.0,
					"link_type":            "DIRECT_SHARE",
				},
				{
					"shareholder_name":     "John Smith",
					"ownership_percentage": 25.0,
					"link_type":            "DIRECT_SHARE",
				},
			},
			"control_relationships": []map[string]interface{}{
				{
					"controller_name":   "Jane Doe",
					"control_type":      "CEO",
					"control_mechanism": "MANAGEMENT_CONTRACT",
				},
			},
		},
		"mapped_at": time.Now(),
	}
}

// executeResolveUBOs implements the core UBO identification algorithm. When
// the DSL fragment names a Czech registry ID, it runs the real
// resolve+evaluate pipeline against ARES; otherwise it falls back to the
// static placeholder result used for non-ARES jurisdictions.
func (d *UBODomain) executeResolveUBOs(ctx context.Context, dsl string) (map[string]interface{}, error) {
	ico, ok := extractDSLField(dsl, "ico")
	if !ok {
		return d.mockResolvedUBOs(), nil
	}

	threshold := 0.25
	if raw, ok := extractDSLField(dsl, "ownership_threshold"); ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			threshold = v / 100.0
		}
	}
	maxDepth := 25
	if raw, ok := extractDSLField(dsl, "depth_limit"); ok {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			maxDepth = v
		}
	}

	client, err := d.ensureRegistryClient()
	if err != nil {
		return nil, err
	}

	resolver := resolve.NewResolver(client)
	traceResult := resolver.Resolve(ctx, resolve.Options{RootID: ico, MaxDepth: maxDepth})
	evalResult := evaluate.Evaluate(traceResult.Trace, evaluate.Options{Threshold: threshold})

	var ubos []map[string]interface{}
	for _, u := range evalResult.UBOs {
		ubos = append(ubos, map[string]interface{}{
			"name":              u.Name,
			"relationship_type": "OWNERSHIP_RESOLUTION",
			"total_ownership":   u.Ownership * 100,
			"voting_percentage": u.Voting * 100,
			"qualifying_reason": strings.Join(u.Reasons, ","),
		})
	}

	return map[string]interface{}{
		"status":               "resolved",
		"ubos":                 ubos,
		"threshold_applied":    threshold * 100,
		"regulatory_framework": "EU_5MLD",
		"sum_ownership":        evalResult.Sums.SumOwnership * 100,
		"sum_voting":           evalResult.Sums.SumVoting * 100,
		"resolved_at":          time.Now(),
	}, nil
}

// mockResolvedUBOs is the placeholder shape returned for entities that
// carry no Czech registry ID.
func (d *UBODomain) mockResolvedUBOs() map[string]interface{} {
	return map[string]interface{}{
		"status": "resolved",
		"ubos": []map[string]interface{}{
			{
				"proper_person_id":  "person-uuid-1",
				"name":              "John Smith",
				"relationship_type": "DIRECT_OWNERSHIP",
				"total_ownership":   25.0,
				"qualifying_reason": "OWNERSHIP_THRESHOLD",
			},
			{
				"proper_person_id":  "person-uuid-2",
				"name":              "Jane Doe",
				"relationship_type": "CONTROL_PRONG",
				"control_type":      "CEO",
				"qualifying_reason": "SENIOR_MANAGING_OFFICIAL",
			},
		},
		"threshold_applied":    25.0,
		"regulatory_framework": "EU_5MLD",
		"resolved_at":          time.Now(),
	}
}

// executeVerifyIdentity implements UBO identity verification workflow
func (d *UBODomain) executeVerifyIdentity(ctx context.Context, dsl string) (map[string]interface{}, error) {
	result := map[string]interface{}{
		"status": "verified",
		"verification_results": []map[string]interface{}{
			{
				"ubo_id":              "person-uuid-1",
				"verification_status": "VERIFIED",
				"documents_verified":  []string{"passport", "proof_of_address"},
				"verification_score":  95.0,
			},
			{
				"ubo_id":              "person-uuid-2",
				"verification_status": "VERIFIED",
				"documents_verified":  []string{"national_id", "utility_bill"},
				"verification_score":  88.0,
			},
		},
		"verified_at": time.Now(),
	}

	// In a real implementation, this would:
	// 1. Collect and validate identity documents
	// 2. Perform document verification checks
	// 3. Cross-reference with official databases
	// 4. Generate verification scores
	// 5. Store audit trail of verification process

	return result, nil
}

// executeScreenPerson implements UBO screening workflow
func (d *UBODomain) executeScreenPerson(ctx context.Context, dsl string) (map[string]interface{}, error) {
	result := map[string]interface{}{
		"status": "screened",
		"screening_results": []map[string]interface{}{
			{
				"ubo_id":           "person-uuid-1",
				"sanctions_status": "CLEARED",
				"pep_status":       "NOT_PEP",
				"adverse_media":    "NO_HITS",
				"overall_result":   "CLEARED",
			},
			{
				"ubo_id":           "person-uuid-2",
				"sanctions_status": "CLEARED",
				"pep_status":       "DOMESTIC_PEP",
				"adverse_media":    "LOW_RISK_HITS",
				"overall_result":   "FLAGGED_FOR_REVIEW",
			},
		},
		"screened_at":     time.Now(),
		"screening_lists": []string{"OFAC", "EU_SANCTIONS", "PEP_DATABASE", "ADVERSE_MEDIA"},
	}

	// In a real implementation, this would:
	// 1. Screen against multiple sanctions lists
	// 2. Check PEP databases
	// 3. Perform adverse media screening
	// 4. Consolidate results and risk ratings
	// 5. Generate compliance alerts if needed

	return result, nil
}

// executeIdentifyTrustParties implements Trust-specific party identification
func (d *UBODomain) executeIdentifyTrustParties(ctx context.Context, dsl string) (map[string]interface{}, error) {
	result := map[string]interface{}{
		"status": "trust_parties_identified",
		"trust_parties": map[string]interface{}{
			"settlors": []map[string]interface{}{
				{
					"party_id":     "person-uuid-settlor-1",
					"name":         "Alice Foundation Creator",
					"party_type":   "PROPER_PERSON",
					"role":         "SETTLOR",
					"nationality":  "US",
					"significance": "TRUST_CREATOR_PRIMARY",
				},
			},
			"trustees": []map[string]interface{}{
				{
					"party_id":               "entity-uuid-trustee-1",
					"name":                   "Professional Trustees LLP",
					"party_type":             "CORPORATE_TRUSTEE",
					"role":                   "TRUSTEE",
					"jurisdiction":           "GB",
					"requires_recursive_ubo": true,
				},
				{
					"party_id":    "person-uuid-trustee-2",
					"name":        "Bob Proper Person Trustee",
					"party_type":  "PROPER_PERSON",
					"role":        "TRUSTEE",
					"nationality": "GB",
				},
			},
			"beneficiaries": []map[string]interface{}{
				{
					"party_id":         "person-uuid-beneficiary-1",
					"name":             "Charlie Named Beneficiary",
					"party_type":       "PROPER_PERSON",
					"role":             "NAMED_BENEFICIARY",
					"beneficiary_type": "NAMED",
				},
				{
					"party_id":         "class-uuid-beneficiary-1",
					"name":             "All grandchildren of Alice",
					"party_type":       "BENEFICIARY_CLASS",
					"role":             "CLASS_BENEFICIARY",
					"beneficiary_type": "CLASS",
					"class_definition": "DESCENDANTS_GENERATION_2",
				},
			},
			"protectors": []map[string]interface{}{
				{
					"party_id":   "person-uuid-protector-1",
					"name":       "David Trust Protector",
					"party_type": "PROPER_PERSON",
					"role":       "PROTECTOR",
					"powers":     []string{"TRUSTEE_APPOINTMENT", "TRUSTEE_REMOVAL", "DISTRIBUTION_VETO"},
				},
			},
		},
		"identified_at":        time.Now(),
		"trust_deed_analyzed":  true,
		"regulatory_framework": "FATF_GUIDANCE_TRUST",
	}

	// In a real implementation, this would:
	// 1. Parse trust deed and governing documents
	// 2. Identify all relevant parties regardless of ownership percentage
	// 3. Classify each party by role and legal significance
	// 4. Determine which parties require recursive UBO analysis
	// 5. Flag beneficiary classes for ongoing monitoring

	return result, nil
}

// executeResolveTrustUBOs implements Trust-specific UBO resolution workflow
func (d *UBODomain) executeResolveTrustUBOs(ctx context.Context, dsl string) (map[string]interface{}, error) {
	result := map[string]interface{}{
		"status": "trust_ubos_resolved",
		"trust_ubos": []map[string]interface{}{
			{
				"proper_person_id":      "person-uuid-settlor-1",
				"name":                  "Alice Foundation Creator",
				"relationship_type":     "TRUST_SETTLOR",
				"qualifying_reason":     "TRUST_CREATOR",
				"verification_required": true,
				"risk_significance":     "HIGH",
			},
			{
				"proper_person_id":      "person-uuid-trustee-2",
				"name":                  "Bob Proper Person Trustee",
				"relationship_type":     "TRUST_TRUSTEE",
				"qualifying_reason":     "LEGAL_MANAGER",
				"verification_required": true,
				"risk_significance":     "HIGH",
			},
			{
				"proper_person_id":      "person-uuid-beneficiary-1",
				"name":                  "Charlie Named Beneficiary",
				"relationship_type":     "TRUST_BENEFICIARY",
				"qualifying_reason":     "NAMED_BENEFICIARY",
				"verification_required": true,
				"risk_significance":     "MEDIUM",
			},
			{
				"proper_person_id":      "person-uuid-protector-1",
				"name":                  "David Trust Protector",
				"relationship_type":     "TRUST_PROTECTOR",
				"qualifying_reason":     "ULTIMATE_CONTROL",
				"verification_required": true,
				"risk_significance":     "VERY_HIGH",
			},
		},
		"corporate_trustees_requiring_ubo": []map[string]interface{}{
			{
				"entity_id":                   "entity-uuid-trustee-1",
				"name":                        "Professional Trustees LLP",
				"requires_recursive_analysis": true,
				"ubo_threshold":               25.0,
			},
		},
		"beneficiary_classes_monitored": []map[string]interface{}{
			{
				"class_id":                              "class-uuid-beneficiary-1",
				"definition":                            "All grandchildren of Alice",
				"monitoring_trigger":                    "DISTRIBUTION_EVENT",
				"threshold_for_individual_verification": 25.0,
			},
		},
		"resolved_at":                      time.Now(),
		"total_natural_persons_identified": 4,
		"regulatory_compliance":            "TRUST_UBO_FATF_COMPLIANT",
	}

	// In a real implementation, this would:
	// 1. Apply Trust-specific UBO identification rules (not 25% ownership)
	// 2. Ensure all relevant natural persons are identified for verification
	// 3. Set up monitoring for beneficiary classes
	// 4. Trigger recursive UBO analysis for corporate trustees
	// 5. Apply jurisdiction-specific Trust regulations

	return result, nil
}

// executeIdentifyOwnershipProng implements Partnership ownership prong analysis
func (d *UBODomain) executeIdentifyOwnershipProng(ctx context.Context, dsl string) (map[string]interface{}, error) {
	result := map[string]interface{}{
		"status": "ownership_prong_identified",
		"ownership_analysis": map[string]interface{}{
			"limited_partners": []map[string]interface{}{
				{
					"partner_id":            "entity-uuid-lp-1",
					"name":                  "Pension Fund Alpha",
					"partner_type":          "INSTITUTIONAL_LIMITED_PARTNER",
					"capital_commitment":    40000000.00,
					"ownership_percentage":  45.0,
					"exceeds_threshold":     true,
					"requires_ubo_analysis": true,
				},
				{
					"partner_id":           "person-uuid-lp-2",
					"name":                 "High Net Worth Individual Beta",
					"partner_type":         "PROPER_PERSON_LIMITED_PARTNER",
					"capital_commitment":   30000000.00,
					"ownership_percentage": 35.0,
					"exceeds_threshold":    true,
					"is_natural_person":    true,
				},
				{
					"partner_id":            "entity-uuid-lp-3",
					"name":                  "Family Office Gamma",
					"partner_type":          "CORPORATE_LIMITED_PARTNER",
					"capital_commitment":    15000000.00,
					"ownership_percentage":  20.0,
					"exceeds_threshold":     false,
					"requires_ubo_analysis": false,
				},
			},
			"ownership_threshold_applied":        25.0,
			"total_partners_exceeding_threshold": 2,
		},
		"analyzed_at":          time.Now(),
		"regulatory_framework": "EU_5MLD_PARTNERSHIP",
	}

	// In a real implementation, this would:
	// 1. Analyze all Limited Partners' capital commitments
	// 2. Calculate ownership percentages based on committed capital
	// 3. Identify partners exceeding 25% threshold
	// 4. Flag corporate partners for recursive UBO analysis
	// 5. Prepare ownership prong results for combination with control prong

	return result, nil
}

// executeResolvePartnershipUBOs implements Partnership-specific UBO resolution
func (d *UBODomain) executeResolvePartnershipUBOs(ctx context.Context, dsl string) (map[string]interface{}, error) {
	result := map[string]interface{}{
		"status": "partnership_ubos_resolved",
		"combined_analysis": map[string]interface{}{
			"ownership_prong_ubos": []map[string]interface{}{
				{
					"proper_person_id":     "person-uuid-lp-2",
					"name":                 "High Net Worth Individual Beta",
					"relationship_type":    "LIMITED_PARTNER_OWNERSHIP",
					"ownership_percentage": 35.0,
					"qualifying_reason":    "OWNERSHIP_THRESHOLD_EXCEEDED",
					"prong_type":           "OWNERSHIP",
				},
			},
			"control_prong_ubos": []map[string]interface{}{
				{
					"proper_person_id":  "person-uuid-gp-manager-1",
					"name":              "Fund Manager Alpha",
					"relationship_type": "GENERAL_PARTNER_CONTROL",
					"control_type":      "FUND_MANAGEMENT",
					"qualifying_reason": "ULTIMATE_CONTROL_GP",
					"prong_type":        "CONTROL",
				},
				{
					"proper_person_id":  "person-uuid-gp-manager-2",
					"name":              "Senior Partner Beta",
					"relationship_type": "GENERAL_PARTNER_CONTROL",
					"control_type":      "INVESTMENT_DECISIONS",
					"qualifying_reason": "SENIOR_MANAGING_OFFICIAL",
					"prong_type":        "CONTROL",
				},
			},
		},
		"entities_requiring_recursive_analysis": []map[string]interface{}{
			{
				"entity_id":                      "entity-uuid-lp-1",
				"name":                           "Pension Fund Alpha",
				"entity_type":                    "INSTITUTIONAL_INVESTOR",
				"ownership_percentage":           45.0,
				"requires_separate_ubo_workflow": true,
			},
			{
				"entity_id":                      "entity-uuid-gp-1",
				"name":                           "Management Company LLP",
				"entity_type":                    "GENERAL_PARTNER_ENTITY",
				"control_significance":           "TOTAL_FUND_CONTROL",
				"requires_separate_ubo_workflow": true,
			},
		},
		"resolved_at":                      time.Now(),
		"total_natural_persons_identified": 3,
		"regulatory_compliance":            "EU_5MLD_DUAL_PRONG_COMPLIANT",
	}

	// In a real implementation, this would:
	// 1. Combine ownership and control prong analyzes
	// 2. Identify all natural persons meeting either prong
	// 3. Ensure no double-counting of individuals
	// 4. Apply jurisdiction-specific Partnership regulations
	// 5. Set up recursive workflows for corporate partners/GPs

	return result, nil
}

// executeRecursiveEntityResolve implements recursive UBO analysis for corporate entities
// executeRecursiveEntityResolve walks nested corporate owners to their
// natural-person UBOs. When the DSL fragment names a Czech registry ID, the
// recursion is the real ARES walk (resolve.Resolver already recurses
// through intermediate companies internally, so "recursive" here means
// reporting per-company-owner breakdowns from one resolved trace rather
// than a second resolve pass); other entity types fall back to the
// existing placeholder shape.
func (d *UBODomain) executeRecursiveEntityResolve(ctx context.Context, dsl string) (map[string]interface{}, error) {
	ico, ok := extractDSLField(dsl, "ico")
	if !ok {
		return d.mockRecursiveEntityResolve(), nil
	}

	maxDepth := 25
	if raw, ok := extractDSLField(dsl, "depth_limit"); ok {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			maxDepth = v
		}
	}

	client, err := d.ensureRegistryClient()
	if err != nil {
		return nil, err
	}

	resolver := resolve.NewResolver(client)
	traceResult := resolver.Resolve(ctx, resolve.Options{RootID: ico, MaxDepth: maxDepth})
	evalResult := evaluate.Evaluate(traceResult.Trace, evaluate.Options{Threshold: 0.25})

	var analyzedEntities []map[string]interface{}
	for _, line := range traceResult.Trace {
		if line.Kind != resolve.KindCompanyOwner {
			continue
		}
		analyzedEntities = append(analyzedEntities, map[string]interface{}{
			"entity_name":    line.Text,
			"analysis_depth": line.Depth,
		})
	}

	maxDepthReached := 0
	for _, line := range traceResult.Trace {
		if line.Depth > maxDepthReached {
			maxDepthReached = line.Depth
		}
	}

	return map[string]interface{}{
		"status": "recursive_analysis_complete",
		"recursive_results": map[string]interface{}{
			"analyzed_entities": analyzedEntities,
		},
		"max_depth_reached":               maxDepthReached,
		"total_recursive_ubos_identified": len(evalResult.UBOs),
		"analyzed_at":                     time.Now(),
	}, nil
}

// mockRecursiveEntityResolve is the placeholder shape returned for entity
// types (trusts, LLPs, institutional funds) that have no Czech registry ID
// to recurse against.
func (d *UBODomain) mockRecursiveEntityResolve() map[string]interface{} {
	return map[string]interface{}{
		"status": "recursive_analysis_complete",
		"recursive_results": map[string]interface{}{
			"analyzed_entities": []map[string]interface{}{
				{
					"entity_id":      "entity-uuid-trustee-1",
					"entity_name":    "Professional Trustees LLP",
					"entity_type":    "LLP",
					"analysis_depth": 2,
					"ubos_found": []map[string]interface{}{
						{
							"proper_person_id":     "person-uuid-llp-partner-1",
							"name":                 "Senior Trustee 1",
							"ownership_percentage": 40.0,
							"relationship_type":    "LLP_PARTNER",
						},
						{
							"proper_person_id":     "person-uuid-llp-partner-2",
							"name":                 "Senior Trustee 2",
							"ownership_percentage": 35.0,
							"relationship_type":    "LLP_PARTNER",
						},
					},
				},
				{
					"entity_id":         "entity-uuid-lp-1",
					"entity_name":       "Pension Fund Alpha",
					"entity_type":       "PENSION_FUND",
					"analysis_depth":    1,
					"special_treatment": "INSTITUTIONAL_INVESTOR_EXEMPTION",
					"ubos_found":        []map[string]interface{}{},
					"exemption_reason":  "REGULATED_INSTITUTIONAL_INVESTOR",
				},
			},
		},
		"max_depth_reached":               3,
		"total_recursive_ubos_identified": 2,
		"analyzed_at":                     time.Now(),
	}
}

// executeIdentifyFinCenControlRoles implements FinCEN-specific control role identification
func (d *UBODomain) executeIdentifyFinCenControlRoles(ctx context.Context, dsl string) (map[string]interface{}, error) {
	result := map[string]interface{}{
		"status": "fincen_control_roles_identified",
		"control_roles_analysis": map[string]interface{}{
			"primary_control_roles": []map[string]interface{}{
				{
					"proper_person_id":        "person-uuid-ceo-1",
					"name":                    "John Smith",
					"title":                   "Chief Executive Officer",
					"fincen_qualifying_role":  "CEO",
					"priority_rank":           1,
					"has_management_control":  true,
					"has_operational_control": true,
				},
				{
					"proper_person_id":        "person-uuid-cfo-1",
					"name":                    "Jane Doe",
					"title":                   "Chief Financial Officer",
					"fincen_qualifying_role":  "CFO",
					"priority_rank":           2,
					"has_management_control":  true,
					"has_operational_control": false,
				},
			},
			"secondary_control_roles": []map[string]interface{}{
				{
					"proper_person_id":        "person-uuid-coo-1",
					"name":                    "Bob Johnson",
					"title":                   "Chief Operating Officer",
					"fincen_qualifying_role":  "COO",
					"priority_rank":           3,
					"has_management_control":  false,
					"has_operational_control": true,
				},
				{
					"proper_person_id":        "person-uuid-president-1",
					"name":                    "Alice Brown",
					"title":                   "President",
					"fincen_qualifying_role":  "PRESIDENT",
					"priority_rank":           4,
					"has_management_control":  true,
					"has_operational_control": false,
				},
			},
			"similar_function_roles": []map[string]interface{}{
				{
					"proper_person_id":       "person-uuid-managing-director-1",
					"name":                   "Charlie Wilson",
					"title":                  "Managing Director",
					"fincen_qualifying_role": "SIMILAR_FUNCTIONS",
					"similar_to":             "CEO",
					"functions_performed":    []string{"STRATEGIC_DECISIONS", "BOARD_REPORTING", "OPERATIONAL_OVERSIGHT"},
					"priority_rank":          5,
				},
			},
		},
		"fincen_control_hierarchy": []string{"CEO", "CFO", "COO", "PRESIDENT", "GENERAL_PARTNER", "MANAGING_MEMBER", "SIMILAR_FUNCTIONS"},
		"identified_at":            time.Now(),
		"regulatory_framework":     "FINCEN_CDD_RULE",
	}

	// In a real implementation, this would:
	// 1. Query organizational structure and management hierarchy
	// 2. Identify all persons holding FinCEN-qualifying titles
	// 3. Analyze job functions to identify "similar functions" roles
	// 4. Rank candidates by FinCEN priority hierarchy
	// 5. Validate that identified roles have actual control authority

	return result, nil
}

// executeApplyFinCenControlProng implements FinCEN Control Prong selection logic
func (d *UBODomain) executeApplyFinCenControlProng(ctx context.Context, dsl string) (map[string]interface{}, error) {
	result := map[string]interface{}{
		"status": "fincen_control_prong_applied",
		"control_prong_decision": map[string]interface{}{
			"selected_control_person": map[string]interface{}{
				"proper_person_id":       "person-uuid-ceo-1",
				"name":                   "John Smith",
				"title":                  "Chief Executive Officer",
				"fincen_qualifying_role": "CEO",
				"selection_reason":       "HIGHEST_PRIORITY_FINCEN_ROLE",
				"selection_method":       "FINCEN_HIERARCHY_RULE",
			},
			"decision_logic": map[string]interface{}{
				"rule_applied":         "SINGLE_PROPER_PERSON_REQUIREMENT",
				"hierarchy_followed":   true,
				"candidates_evaluated": 5,
				"fallback_used":        false,
				"tie_breaker_applied":  false,
			},
			"fincen_compliance_status": "COMPLIANT",
			"alternative_candidates": []map[string]interface{}{
				{
					"proper_person_id":    "person-uuid-cfo-1",
					"name":                "Jane Doe",
					"title":               "Chief Financial Officer",
					"rank":                2,
					"not_selected_reason": "LOWER_PRIORITY_THAN_CEO",
				},
				{
					"proper_person_id":    "person-uuid-managing-director-1",
					"name":                "Charlie Wilson",
					"title":               "Managing Director",
					"rank":                5,
					"not_selected_reason": "SIMILAR_FUNCTIONS_SECONDARY_TO_EXPLICIT_ROLES",
				},
			},
		},
		"regulatory_requirements": map[string]interface{}{
			"single_individual_selected":     true,
			"has_significant_responsibility": true,
			"control_manage_or_direct":       true,
			"fincen_rule_compliance":         "31_CFR_1010_230",
		},
		"applied_at":           time.Now(),
		"regulatory_framework": "FINCEN_CDD_RULE",
	}

	// In a real implementation, this would:
	// 1. Apply FinCEN's "single proper person" requirement
	// 2. Follow regulatory hierarchy: CEO > CFO > COO > President > GP > Managing Member
	// 3. Apply tie-breaking rules when multiple people hold equivalent roles
	// 4. Implement fallback to "similar functions" analysis
	// 5. Validate selected person has actual control authority
	// 6. Document decision rationale for regulatory examination

	return result, nil
}

// executeAssessRisk implements UBO-based risk assessment workflow
func (d *UBODomain) executeAssessRisk(ctx context.Context, dsl string) (map[string]interface{}, error) {
	result := map[string]interface{}{
		"status": "assessed",
		"risk_assessment": map[string]interface{}{
			"overall_risk_rating": "MEDIUM",
			"risk_factors": []string{
				"UBO_IS_PEP",
				"COMPLEX_OWNERSHIP_STRUCTURE",
			},
			"risk_score": 65.0,
			"risk_components": map[string]interface{}{
				"ubo_risk":             70.0,
				"jurisdiction_risk":    45.0,
				"structure_complexity": 80.0,
			},
		},
		"mitigation_required": []string{
			"ENHANCED_DUE_DILIGENCE",
			"SENIOR_MANAGEMENT_APPROVAL",
		},
		"assessed_at": time.Now(),
	}

	// In a real implementation, this would:
	// 1. Analyze UBO risk profiles
	// 2. Consider jurisdiction risks
	// 3. Evaluate structure complexity
	// 4. Apply risk scoring algorithms
	// 5. Determine required mitigation measures

	return result, nil
}

// GetDomainInfo returns information about the UBO domain
func (d *UBODomain) GetDomainInfo() map[string]interface{} {
	return map[string]interface{}{
		"domain":      "ubo",
		"version":     "2.1.0",
		"description": "Ultimate Beneficial Ownership identification and verification with entity-type-specific workflows and FinCEN Control Prong compliance",
		"verbs":       20,
		"states": []string{
			"INITIAL",
			"ENTITY_IDENTIFIED",
			"ENTITY_DATA_COLLECTED",
			"OWNERSHIP_STRUCTURE_MAPPED",
			"STRUCTURE_UNROLLED",
			"UBOS_IDENTIFIED",
			"OWNERSHIP_CALCULATED",
			"CONTROL_IDENTIFIED",
			"THRESHOLDS_APPLIED",
			"IDENTITY_VERIFICATION_COMPLETE",
			"SCREENING_COMPLETE",
			"RISK_ASSESSED",
			"MONITORING_ACTIVE",
			"DATA_REFRESHED",
			"MANUAL_REVIEW_PENDING",
		},
		"capabilities": []string{
			"Entity data collection",
			"Ownership structure mapping",
			"Recursive ownership unrolling",
			"UBO identification with thresholds",
			"Control prong analysis",
			"Trust-specific party identification",
			"Trust UBO resolution (FATF compliant)",
			"Partnership dual-prong analysis",
			"Limited Partnership UBO resolution",
			"Recursive corporate entity analysis",
			"FinCEN Control Prong identification",
			"FinCEN regulatory hierarchy compliance",
			"Identity verification",
			"Sanctions and PEP screening",
			"Risk assessment",
			"Ongoing monitoring",
			"Manual review workflow",
		},
	}
}

// GenerateSampleUBOWorkflow creates a sample DSL workflow for UBO identification
func (d *UBODomain) GenerateSampleUBOWorkflow(entityName, jurisdiction string) string {
	return fmt.Sprintf(`; Ultimate Beneficial Ownership Discovery Workflow
; Entity: %s (Jurisdiction: %s)

; Step 1: Collect Entity Data
(ubo.collect-entity-data
  (entity_name "%s")
  (jurisdiction "%s")
  (entity_type "CORPORATION"))

; Step 2: Get Ownership Structure
(ubo.get-ownership-structure
  (entity_id @attr{entity-uuid})
  (depth_limit 5))

; Step 3: Unroll Complex Structures
(ubo.unroll-structure
  (entity_id @attr{entity-uuid})
  (consolidation_method "ADDITIVE"))

; Step 4: Resolve UBOs
(ubo.resolve-ubos
  (entity_id @attr{entity-uuid})
  (ownership_threshold 25.0)
  (jurisdiction_rules "EU_5MLD"))

; Step 5: Identify Control Prong
(ubo.identify-control-prong
  (entity_id @attr{entity-uuid})
  (control_types ["CEO", "BOARD_MAJORITY", "VOTING_CONTROL"]))

; Step 6: Apply Regulatory Thresholds
(ubo.apply-thresholds
  (ownership_results @attr{ownership-data})
  (control_results @attr{control-data})
  (regulatory_framework "EU_5MLD"))

; Step 7: Verify UBO Identities
(ubo.verify-identity
  (ubo_id @attr{ubo-uuid-1})
  (document_list ["passport", "proof_of_address"])
  (verification_level "ENHANCED"))

(ubo.verify-identity
  (ubo_id @attr{ubo-uuid-2})
  (document_list ["national_id", "utility_bill"])
  (verification_level "ENHANCED"))

; Step 8: Screen Against Watchlists
(ubo.screen-person
  (ubo_id @attr{ubo-uuid-1})
  (screening_lists ["OFAC", "EU_SANCTIONS", "PEP_DATABASE"])
  (screening_intensity "COMPREHENSIVE"))

(ubo.screen-person
  (ubo_id @attr{ubo-uuid-2})
  (screening_lists ["OFAC", "EU_SANCTIONS", "PEP_DATABASE"])
  (screening_intensity "COMPREHENSIVE"))

; Step 9: Assess Overall Risk
(ubo.assess-risk
  (entity_id @attr{entity-uuid})
  (ubo_list @attr{verified-ubos})
  (risk_factors @attr{additional-factors}))

; Step 10: Set Up Ongoing Monitoring
(ubo.monitor-changes
  (entity_id @attr{entity-uuid})
  (monitoring_frequency "MONTHLY")
  (alert_thresholds @attr{alert-config}))

; Workflow Complete - UBO identification and verification done
(audit.log
  (event "UBO_WORKFLOW_COMPLETE")
  (entity_id @attr{entity-uuid})
  (timestamp @attr{completion-timestamp}))`, entityName, jurisdiction, entityName, jurisdiction)
}

// GenerateTrustUBOWorkflow creates a Trust-specific DSL workflow
func (d *UBODomain) GenerateTrustUBOWorkflow(trustName, jurisdiction string) string {
	return fmt.Sprintf(`; Trust Ultimate Beneficial Ownership Discovery Workflow (FATF Compliant)
; Trust: %s (Jurisdiction: %s)
; Note: Trust UBO identification does not rely on 25%% ownership thresholds

; Step 1: Collect Trust Entity Data
(ubo.collect-entity-data
  (entity_name "%s")
  (entity_type "TRUST")
  (jurisdiction "%s"))

; Step 2: Identify ALL Trust Parties (Regardless of Percentage)
(ubo.identify-trust-parties
  (trust_id @attr{trust-uuid})
  (trust_deed_source @attr{trust-deed-doc})
  (parties_to_identify ["SETTLORS", "TRUSTEES", "BENEFICIARIES", "PROTECTORS"]))

; Step 3: Resolve Trust UBOs (All Natural Persons)
(ubo.resolve-trust-ubos
  (trust_id @attr{trust-uuid})
  (trust_parties @attr{identified-parties})
  (regulatory_framework "FATF_TRUST_GUIDANCE"))

; Step 4: Recursive Analysis of Corporate Trustees
(ubo.recursive-entity-resolve
  (parent_entity_id @attr{trust-uuid})
  (corporate_trustees @attr{corporate-trustees-list})
  (ownership_threshold 25.0)
  (max_depth 5))

; Step 5: Verify ALL Identified Natural Persons
(ubo.verify-identity
  (ubo_list @attr{trust-ubos-all})
  (verification_level "ENHANCED")
  (document_requirements @attr{trust-kyc-docs}))

; Step 6: Screen ALL Identified Persons
(ubo.screen-person
  (ubo_list @attr{trust-ubos-all})
  (screening_lists ["OFAC", "EU_SANCTIONS", "PEP_DATABASE"])
  (screening_intensity "COMPREHENSIVE"))

; Step 7: Assess Trust-Specific Risk
(ubo.assess-risk
  (trust_id @attr{trust-uuid})
  (risk_factors ["TRUST_COMPLEXITY", "BENEFICIARY_CLASS", "OFFSHORE_JURISDICTION"])
  (trust_ubos @attr{verified-trust-ubos}))

; Step 8: Set Up Beneficiary Class Monitoring
(ubo.monitor-changes
  (trust_id @attr{trust-uuid})
  (monitoring_triggers ["BENEFICIARY_DISTRIBUTION", "TRUSTEE_CHANGE", "PROTECTOR_ACTION"])
  (monitoring_frequency "QUARTERLY"))

; Workflow Complete - Trust UBO identification complete
(audit.log
  (event "TRUST_UBO_WORKFLOW_COMPLETE")
  (trust_id @attr{trust-uuid})
  (regulatory_compliance "FATF_TRUST_COMPLIANT")
  (timestamp @attr{completion-timestamp}))`, trustName, jurisdiction, trustName, jurisdiction)
}

// GeneratePartnershipUBOWorkflow creates a Limited Partnership-specific DSL workflow
func (d *UBODomain) GeneratePartnershipUBOWorkflow(fundName, jurisdiction string) string {
	return fmt.Sprintf(`; Limited Partnership UBO Discovery Workflow (Dual Prong Analysis)
; Fund: %s (Jurisdiction: %s)
; Note: Partnership UBO identification requires BOTH ownership AND control prong analysis

; Step 1: Collect Partnership Entity Data
(ubo.collect-entity-data
  (entity_name "%s")
  (entity_type "LIMITED_PARTNERSHIP")
  (jurisdiction "%s"))

; Step 2: Identify Ownership Prong (Limited Partners >= 25%%)
(ubo.identify-ownership-prong
  (partnership_id @attr{partnership-uuid})
  (ownership_threshold 25.0)
  (capital_commitments @attr{lp-commitments}))

; Step 3: Identify Control Prong (General Partner Management)
(ubo.identify-control-prong
  (partnership_id @attr{partnership-uuid})
  (control_types ["GENERAL_PARTNER", "FUND_MANAGER", "INVESTMENT_COMMITTEE"])
  (management_structure @attr{gp-structure}))

; Step 4: Resolve Partnership UBOs (Dual Prong Combination)
(ubo.resolve-partnership-ubos
  (partnership_id @attr{partnership-uuid})
  (ownership_results @attr{ownership-prong-results})
  (control_results @attr{control-prong-results})
  (regulatory_framework "EU_5MLD"))

; Step 5: Recursive Analysis of Corporate Partners and GP
(ubo.recursive-entity-resolve
  (parent_entity_id @attr{partnership-uuid})
  (corporate_entities @attr{corporate-partners-and-gp})
  (ownership_threshold 25.0)
  (max_depth 5))

; Step 6: Verify ALL Identified Natural Persons
(ubo.verify-identity
  (ubo_list @attr{partnership-ubos-all})
  (verification_level "ENHANCED")
  (document_requirements @attr{partnership-kyc-docs}))

; Step 7: Screen ALL Identified Persons
(ubo.screen-person
  (ubo_list @attr{partnership-ubos-all})
  (screening_lists ["OFAC", "EU_SANCTIONS", "PEP_DATABASE"])
  (screening_intensity "COMPREHENSIVE"))

; Step 8: Assess Partnership-Specific Risk
(ubo.assess-risk
  (partnership_id @attr{partnership-uuid})
  (risk_factors ["FUND_CONTROLLER_RISK", "INSTITUTIONAL_LP_CONCENTRATION", "GP_COMPLEXITY"])
  (partnership_ubos @attr{verified-partnership-ubos}))

; Step 9: Set Up LP/GP Change Monitoring
(ubo.monitor-changes
  (partnership_id @attr{partnership-uuid})
  (monitoring_triggers ["LP_COMMITMENT_CHANGE", "GP_MANAGEMENT_CHANGE", "CONTROL_TRANSFER"])
  (monitoring_frequency "MONTHLY"))

; Workflow Complete - Partnership UBO identification complete
(audit.log
  (event "PARTNERSHIP_UBO_WORKFLOW_COMPLETE")
  (partnership_id @attr{partnership-uuid})
  (regulatory_compliance "EU_5MLD_DUAL_PRONG_COMPLIANT")
  (timestamp @attr{completion-timestamp}))`, fundName, jurisdiction, fundName, jurisdiction)
}

// GenerateFinCenControlProngWorkflow creates a FinCEN-specific Control Prong DSL workflow
func (d *UBODomain) GenerateFinCenControlProngWorkflow(entityName, jurisdiction string) string {
	return fmt.Sprintf(`; FinCEN Control Prong Identification Workflow (31 CFR 1010.230)
; Entity: %s (Jurisdiction: %s)
; Regulatory Requirement: Identify SINGLE individual with significant responsibility to control, manage, or direct

; Step 1: Collect Entity Data
(ubo.collect-entity-data
  (entity_name "%s")
  (entity_type "CORPORATION")
  (jurisdiction "%s"))

; Step 2: Identify FinCEN Control Roles
(ubo.identify-fincen-control-roles
  (entity_id @attr{entity-uuid})
  (control_hierarchy ["CEO", "CFO", "COO", "PRESIDENT", "GENERAL_PARTNER", "MANAGING_MEMBER"])
  (include_similar_functions true))

; Step 3: Apply FinCEN Control Prong Decision Logic
(ubo.apply-fincen-control-prong
  (entity_id @attr{entity-uuid})
  (control_roles @attr{identified-control-roles})
  (selection_method "FINCEN_HIERARCHY_RULE")
  (single_individual_requirement true))

; Step 4: Verify Selected Control Person
(ubo.verify-identity
  (ubo_id @attr{selected-control-person})
  (verification_level "ENHANCED")
  (document_requirements @attr{fincen-control-kyc-docs}))

; Step 5: Screen Control Person
(ubo.screen-person
  (ubo_id @attr{selected-control-person})
  (screening_lists ["OFAC", "US_SANCTIONS", "PEP_DATABASE"])
  (screening_intensity "COMPREHENSIVE"))

; Step 6: Document Control Prong Compliance
(compliance.document
  (entity_id @attr{entity-uuid})
  (compliance_type "FINCEN_CONTROL_PRONG")
  (selected_person @attr{selected-control-person})
  (decision_rationale @attr{control-prong-decision})
  (regulatory_citation "31_CFR_1010_230"))

; FinCEN Control Prong Workflow Complete
(audit.log
  (event "FINCEN_CONTROL_PRONG_COMPLETE")
  (entity_id @attr{entity-uuid})
  (regulatory_compliance "FINCEN_CDD_COMPLIANT")
  (control_person @attr{selected-control-person})
  (timestamp @attr{completion-timestamp}))`, entityName, jurisdiction, entityName, jurisdiction)
}
