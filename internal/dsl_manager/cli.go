package dsl_manager

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"dsl-ob-poc/internal/datastore"
)

type DSLManagerCLI struct {
	dataStore datastore.DataStore
	dm        *DSLManager
}

func NewDSLManagerCLI(dataStore datastore.DataStore) *DSLManagerCLI {
	return &DSLManagerCLI{
		dataStore: dataStore,
		dm:        NewDSLManager(dataStore),
	}
}

func (cli *DSLManagerCLI) Run(args []string) error {
	if len(args) < 1 {
		return cli.printUsage()
	}

	command := args[0]
	switch command {
	case "create-case":
		return cli.createCase(args[1:])
	case "update-case":
		return cli.updateCase(args[1:])
	case "get-case":
		return cli.getCase(args[1:])
	case "list-cases":
		return cli.listCases(args[1:])
	default:
		return cli.printUsage()
	}
}

func (cli *DSLManagerCLI) createCase(args []string) error {
	fs := flag.NewFlagSet("create-case", flag.ExitOnError)
	domain := fs.String("domain", "", "Domain for the case (required)")
	investorName := fs.String("investor-name", "", "Investor name")
	investorType := fs.String("investor-type", "", "Investor type")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *domain == "" {
		return fmt.Errorf("domain is required")
	}

	initialData := map[string]interface{}{
		"investor_name": *investorName,
		"investor_type": *investorType,
	}

	session, err := cli.dm.CreateOnboardingRequest(*domain, *investorName, initialData)
	if err != nil {
		return err
	}

	// Generate initial DSL fragment based on domain
	var dslFragment string
	switch *domain {
	case "investor":
		dslFragment = fmt.Sprintf(
			`(investor.create
				(investor.name "%s")
				(investor.type "%s")
				(onboarding.id "%s")
			)`,
			*investorName,
			*investorType,
			session.OnboardingID,
		)
	default:
		dslFragment = fmt.Sprintf(
			`(case.create
				(domain "%s")
				(onboarding.id "%s")
			)`,
			*domain,
			session.OnboardingID,
		)
	}

	// Note: DSL accumulation is handled internally by CreateOnboardingRequest
	_ = dslFragment // Generated for potential future use

	// Output result
	output := struct {
		OnboardingID string `json:"onboarding_id"`
		Domain       string `json:"domain"`
		CurrentState string `json:"current_state"`
		DSL          string `json:"dsl"`
	}{
		OnboardingID: session.OnboardingID,
		Domain:       session.Domain,
		CurrentState: string(session.CurrentState),
		DSL:          session.AccumulatedDSL,
	}

	return cli.outputJSON(output)
}

func (cli *DSLManagerCLI) updateCase(args []string) error {
	fs := flag.NewFlagSet("update-case", flag.ExitOnError)
	onboardingID := fs.String("onboarding-id", "", "Onboarding ID (required)")
	stateTransition := fs.String("state", "", "New state for the case (required)")
	_ = fs.String("dsl", "", "DSL fragment to append") // Suppress unused variable

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *onboardingID == "" {
		return fmt.Errorf("onboarding ID is required")
	}

	if *stateTransition == "" {
		return fmt.Errorf("state transition is required")
	}

	// TODO: Implement proper state transition method in DSLManager
	// For now, return an error indicating this functionality is not implemented
	return fmt.Errorf("updateCase functionality not yet implemented - DSLManager needs state transition methods")
}

func (cli *DSLManagerCLI) getCase(args []string) error {
	fs := flag.NewFlagSet("get-case", flag.ExitOnError)
	onboardingID := fs.String("onboarding-id", "", "Onboarding ID (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *onboardingID == "" {
		return fmt.Errorf("onboarding ID is required")
	}

	session, err := cli.dm.GetOnboardingProcess(*onboardingID)
	if err != nil {
		return err
	}

	// Output result
	output := struct {
		OnboardingID string `json:"onboarding_id"`
		Domain       string `json:"domain"`
		CurrentState string `json:"current_state"`
		DSL          string `json:"dsl"`
	}{
		OnboardingID: session.OnboardingID,
		Domain:       session.Domain,
		CurrentState: string(session.CurrentState),
		DSL:          session.AccumulatedDSL,
	}

	return cli.outputJSON(output)
}

func (cli *DSLManagerCLI) listCases(args []string) error {
	sessions := cli.dm.ListOnboardingProcesses()

	caseIDs := make([]string, len(sessions))
	for i, session := range sessions {
		caseIDs[i] = session.OnboardingID
	}

	output := struct {
		TotalCases int      `json:"total_cases"`
		CaseIDs    []string `json:"case_ids"`
	}{
		TotalCases: len(sessions),
		CaseIDs:    caseIDs,
	}

	return cli.outputJSON(output)
}

func (cli *DSLManagerCLI) outputJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (cli *DSLManagerCLI) printUsage() error {
	usage := `DSL Manager CLI

Usage:
  dsl-manager create-case --domain=<domain> [options]
  dsl-manager update-case --onboarding-id=<id> --state=<new_state> [--dsl=<dsl_fragment>]
  dsl-manager get-case --onboarding-id=<id>
  dsl-manager list-cases

Options for create-case:
  --domain        Domain for the case (required)
  --investor-name Optional investor name
  --investor-type Optional investor type

Options for update-case:
  --onboarding-id Onboarding ID (required)
  --state         New state for the case (required)
  --dsl           DSL fragment to append (optional)

Options for get-case:
  --onboarding-id Onboarding ID (required)

Examples:
  dsl-manager create-case --domain=investor --investor-name="John Doe" --investor-type=individual
  dsl-manager update-case --onboarding-id=abc123 --state=KYC_STARTED --dsl='(kyc.start (requirements ...))'
  dsl-manager get-case --onboarding-id=abc123
  dsl-manager list-cases
`
	fmt.Println(usage)
	return nil
}

/*
This CLI implementation provides a comprehensive interface for managing DSL cases with the following key features:

1. `create-case`: Initialize a new case with optional domain-specific details
2. `update-case`: Check the onboarding ID and state flags, then return an error; no state update is performed
3. `get-case`: Retrieve the full details of a specific case
4. `list-cases`: List all active case IDs

Key Design Principles:
- JSON output for machine-readable results
- Flexible domain support
- Clear error handling
- Comprehensive usage instructions
- Support for stateful DSL management

The CLI uses flag parsing to handle arguments, generates domain-specific DSL fragments, and provides a clean, consistent interface for interacting with the DSL Manager.
*/
