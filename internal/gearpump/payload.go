// Package gearpump integrates with a Gearpump stream-processing service
// instance: it assembles the submitapp request body from platform service
// instance data and drives the login/submit REST flow.
package gearpump

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trustedanalytics/tapdeploy/internal/client"
)

// InstanceEntry describes one bound service instance in the submitapp body.
type InstanceEntry struct {
	Label       string          `json:"label"`
	Name        string          `json:"name"`
	Plan        string          `json:"plan"`
	Tags        []string        `json:"tags"`
	Credentials json.RawMessage `json:"credentials"`
}

// SubmitBody maps each service label to its instance entries, plus the
// "usersArgs" section of caller-supplied key/value pairs.
type SubmitBody map[string]interface{}

// Assembler builds submitapp request bodies from platform data.
type Assembler struct {
	client *client.Client
}

// NewAssembler creates an assembler over the given platform client.
func NewAssembler(tapClient *client.Client) *Assembler {
	return &Assembler{client: tapClient}
}

// BuildSubmitBody gathers plan, offering, and credential data for each
// named service instance and assembles the submitapp request body. Any
// failed lookup aborts the whole assembly; there is no partial body.
//
// Instances sharing a service label overwrite each other: the last one
// listed wins, matching the platform's historical behavior.
func (a *Assembler) BuildSubmitBody(ctx context.Context, instances []string, userArgs map[string]string) (SubmitBody, error) {
	body := SubmitBody{}

	for _, name := range instances {
		entry, err := a.instanceEntry(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("assembling data for instance %q: %w", name, err)
		}

		body[entry.Label] = []InstanceEntry{entry}
	}

	body["usersArgs"] = userArgs

	return body, nil
}

// instanceEntry resolves one instance's metadata through the chained
// plan and offering lookups, then peeks its credentials.
func (a *Assembler) instanceEntry(ctx context.Context, name string) (InstanceEntry, error) {
	instance, err := a.client.ServiceInstances().Get(ctx, name)
	if err != nil {
		return InstanceEntry{}, err
	}

	plan, err := a.client.ServicePlans().GetPlan(ctx, instance.Entity.ServicePlanURL)
	if err != nil {
		return InstanceEntry{}, err
	}

	service, err := a.client.ServicePlans().GetService(ctx, plan.Entity.ServiceURL)
	if err != nil {
		return InstanceEntry{}, err
	}

	credentials, err := a.client.ServiceKeys().PeekCredentials(ctx, instance.Metadata.GUID)
	if err != nil {
		return InstanceEntry{}, err
	}

	return InstanceEntry{
		Label:       service.Entity.Label,
		Name:        name,
		Plan:        plan.Entity.Name,
		Tags:        instance.Entity.Tags,
		Credentials: credentials,
	}, nil
}
