package catalog

import (
	"github.com/fluxwire/flowgraph"
)

func execIn() flowgraph.Pin {
	return flowgraph.Pin{ID: flowgraph.PinExecIn, Label: "Exec", Type: flowgraph.TypeExec}
}

func execOut() flowgraph.Pin {
	return flowgraph.Pin{ID: flowgraph.PinExecOut, Label: "Exec", Type: flowgraph.TypeExec}
}

// Builtin returns the catalog of the editor's node palette.
func Builtin() *Catalog {
	return New(
		&Template{
			Type:  flowgraph.NodeInput,
			Label: "Input",
			Icon:  "log-in",
			Outputs: []flowgraph.Pin{
				execOut(),
				{ID: "value", Label: "Value", Type: flowgraph.TypeAny, Doc: "The workflow's input payload."},
			},
			Config:       &flowgraph.InputConfig{},
			// file_type used to select an upload parser; uploads moved
			// behind the tool layer and the pin was removed for good.
			RetiredPins:  []string{"file_type"},
			LegacyLabels: []string{"Start", "Workflow Input"},
		},
		&Template{
			Type:  flowgraph.NodeOutput,
			Label: "Output",
			Icon:  "log-out",
			Inputs: []flowgraph.Pin{
				execIn(),
				{ID: "value", Label: "Value", Type: flowgraph.TypeAny, Doc: "The workflow's result payload."},
			},
			Config:       &flowgraph.OutputConfig{},
			LegacyLabels: []string{"End", "Workflow Output"},
		},
		&Template{
			Type:  flowgraph.NodeAgent,
			Label: "Agent",
			Icon:  "bot",
			Inputs: []flowgraph.Pin{
				execIn(),
				{ID: "prompt", Label: "Prompt", Type: flowgraph.TypeString},
				{ID: "system", Label: "System Prompt", Type: flowgraph.TypeString},
				{ID: "tools", Label: "Tools", Type: flowgraph.TypeTools},
				{ID: "memory", Label: "Memory", Type: flowgraph.TypeMemory},
				{ID: "stream", Label: "Stream", Type: flowgraph.TypeBoolean},
			},
			Outputs: []flowgraph.Pin{
				execOut(),
				{ID: "response", Label: "Response", Type: flowgraph.TypeString},
				{ID: "messages", Label: "Messages", Type: flowgraph.TypeArray, Doc: "Full message transcript of the run."},
			},
			Defaults:     map[string]any{"stream": false},
			Config:       &flowgraph.AgentConfig{Temperature: 0.7, MaxIterations: 10},
			LegacyLabels: []string{"LLM Agent", "Tool Agent"},
			LegacyBoolFields: map[string]string{
				"streaming": "stream",
			},
		},
		&Template{
			Type:  flowgraph.NodeLLMCall,
			Label: "LLM Call",
			Icon:  "sparkles",
			Inputs: []flowgraph.Pin{
				execIn(),
				{ID: "prompt", Label: "Prompt", Type: flowgraph.TypeString},
				{ID: "system", Label: "System Prompt", Type: flowgraph.TypeString},
				{ID: "provider", Label: "Provider", Type: flowgraph.TypeProvider},
				{ID: "model", Label: "Model", Type: flowgraph.TypeModel},
				{ID: "stream", Label: "Stream", Type: flowgraph.TypeBoolean},
			},
			Outputs: []flowgraph.Pin{
				execOut(),
				{ID: "response", Label: "Response", Type: flowgraph.TypeString},
			},
			Defaults:     map[string]any{"stream": false},
			Config:       &flowgraph.LLMCallConfig{Temperature: 0.7},
			LegacyLabels: []string{"Completion", "LLM"},
			LegacyBoolFields: map[string]string{
				"streaming": "stream",
			},
		},
		&Template{
			Type:  flowgraph.NodeToolCall,
			Label: "Tool Call",
			Icon:  "wrench",
			Inputs: []flowgraph.Pin{
				execIn(),
				{ID: "arguments", Label: "Arguments", Type: flowgraph.TypeObject},
			},
			Outputs: []flowgraph.Pin{
				execOut(),
				{ID: "result", Label: "Result", Type: flowgraph.TypeObject},
			},
			Config:       &flowgraph.ToolCallConfig{},
			LegacyLabels: []string{"Tool"},
		},
		&Template{
			Type:  flowgraph.NodeBranch,
			Label: "Branch",
			Icon:  "git-branch",
			Inputs: []flowgraph.Pin{
				execIn(),
				{ID: "condition", Label: "Condition", Type: flowgraph.TypeBoolean},
			},
			Outputs: []flowgraph.Pin{
				{ID: "exec-true", Label: "True", Type: flowgraph.TypeExec},
				{ID: "exec-false", Label: "False", Type: flowgraph.TypeExec},
			},
			Config:       &flowgraph.BranchConfig{},
			LegacyLabels: []string{"If", "Condition"},
		},
		&Template{
			Type:  flowgraph.NodeCode,
			Label: "Code",
			Icon:  "code",
			Inputs: []flowgraph.Pin{
				execIn(),
				{ID: "input", Label: "Input", Type: flowgraph.TypeAny},
			},
			Outputs: []flowgraph.Pin{
				execOut(),
				{ID: "output", Label: "Output", Type: flowgraph.TypeAny},
				{ID: "error", Label: "Error", Type: flowgraph.TypeString},
			},
			Config:       &flowgraph.CodeConfig{Language: "python", TimeoutSeconds: 30},
			LegacyLabels: []string{"Python", "Script"},
		},
		&Template{
			Type:  flowgraph.NodeMemory,
			Label: "Memory",
			Icon:  "database",
			Inputs: []flowgraph.Pin{
				execIn(),
				{ID: "value", Label: "Value", Type: flowgraph.TypeAny},
			},
			Outputs: []flowgraph.Pin{
				execOut(),
				{ID: "memory", Label: "Memory", Type: flowgraph.TypeMemory},
			},
			Config:       &flowgraph.MemoryConfig{Scope: "session", MaxEntries: 50},
			LegacyLabels: []string{"Conversation Memory"},
		},
		&Template{
			Type:  flowgraph.NodeAssert,
			Label: "Assert",
			Icon:  "shield-check",
			Inputs: []flowgraph.Pin{
				execIn(),
				{ID: "value", Label: "Value", Type: flowgraph.TypeAny},
				{ID: "assertions", Label: "Assertions", Type: flowgraph.TypeAssertions},
				{ID: "stop_on_failure", Label: "Stop On Failure", Type: flowgraph.TypeBoolean},
			},
			Outputs: []flowgraph.Pin{
				execOut(),
				{ID: "passed", Label: "Passed", Type: flowgraph.TypeBoolean},
				{ID: "failures", Label: "Failures", Type: flowgraph.TypeArray},
			},
			Defaults:     map[string]any{"stop_on_failure": true},
			Config:       &flowgraph.AssertConfig{},
			LegacyLabels: []string{"Assertion"},
			LegacyBoolFields: map[string]string{
				"stop_on_failure": "stop_on_failure",
			},
		},
	)
}
