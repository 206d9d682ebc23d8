package flowgraph

import (
	"encoding/json"
	"fmt"
)

// Node type identifiers. The config union below is closed over this set;
// documents may still carry unknown types, whose config stays raw.
const (
	NodeInput    = "input"
	NodeOutput   = "output"
	NodeAgent    = "agent"
	NodeLLMCall  = "llm_call"
	NodeToolCall = "tool_call"
	NodeBranch   = "branch"
	NodeCode     = "code"
	NodeMemory   = "memory"
	NodeAssert   = "assert"
)

// Config is the typed, per-node-type configuration payload. Each variant
// defines its own deep-copy semantics; clipboard and template instantiation
// go through Clone so no variant can be copied by accident of aliasing.
type Config interface {
	NodeType() string
	Clone() Config
}

// InputConfig configures a workflow input node.
type InputConfig struct {
	Schema json.RawMessage `json:"schema,omitempty"`
}

// OutputConfig configures a workflow output node.
type OutputConfig struct {
	Schema json.RawMessage `json:"schema,omitempty"`
}

// AgentConfig configures a tool-looping agent node.
type AgentConfig struct {
	Provider      string  `json:"provider,omitempty"`
	Model         string  `json:"model,omitempty"`
	SystemPrompt  string  `json:"systemPrompt,omitempty"`
	Temperature   float64 `json:"temperature,omitempty"`
	MaxIterations int     `json:"maxIterations,omitempty"`
}

// LLMCallConfig configures a single completion call.
type LLMCallConfig struct {
	Provider     string  `json:"provider,omitempty"`
	Model        string  `json:"model,omitempty"`
	SystemPrompt string  `json:"systemPrompt,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

// ToolCallConfig configures a direct tool invocation.
type ToolCallConfig struct {
	Tool      string         `json:"tool,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// BranchConfig configures a conditional branch node.
type BranchConfig struct {
	Expression string `json:"expression,omitempty"`
}

// CodeConfig configures a sandboxed code node.
type CodeConfig struct {
	Language       string `json:"language,omitempty"`
	Source         string `json:"source,omitempty"`
	TimeoutSeconds int    `json:"timeoutSeconds,omitempty"`
}

// MemoryConfig configures a conversation-memory node.
type MemoryConfig struct {
	Scope      string `json:"scope,omitempty"`
	MaxEntries int    `json:"maxEntries,omitempty"`
}

// AssertConfig configures an assertion node.
type AssertConfig struct {
	Message string `json:"message,omitempty"`
}

func (c *InputConfig) NodeType() string    { return NodeInput }
func (c *OutputConfig) NodeType() string   { return NodeOutput }
func (c *AgentConfig) NodeType() string    { return NodeAgent }
func (c *LLMCallConfig) NodeType() string  { return NodeLLMCall }
func (c *ToolCallConfig) NodeType() string { return NodeToolCall }
func (c *BranchConfig) NodeType() string   { return NodeBranch }
func (c *CodeConfig) NodeType() string     { return NodeCode }
func (c *MemoryConfig) NodeType() string   { return NodeMemory }
func (c *AssertConfig) NodeType() string   { return NodeAssert }

func (c *InputConfig) Clone() Config {
	out := *c
	out.Schema = append(json.RawMessage(nil), c.Schema...)
	return &out
}

func (c *OutputConfig) Clone() Config {
	out := *c
	out.Schema = append(json.RawMessage(nil), c.Schema...)
	return &out
}

func (c *AgentConfig) Clone() Config {
	out := *c
	return &out
}

func (c *LLMCallConfig) Clone() Config {
	out := *c
	return &out
}

func (c *ToolCallConfig) Clone() Config {
	out := *c
	if c.Arguments != nil {
		out.Arguments = cloneValue(c.Arguments).(map[string]any)
	}
	return &out
}

func (c *BranchConfig) Clone() Config {
	out := *c
	return &out
}

func (c *CodeConfig) Clone() Config {
	out := *c
	return &out
}

func (c *MemoryConfig) Clone() Config {
	out := *c
	return &out
}

func (c *AssertConfig) Clone() Config {
	out := *c
	return &out
}

// newConfig returns the zero config variant for a node type, or nil for
// unknown types.
func newConfig(nodeType string) Config {
	switch nodeType {
	case NodeInput:
		return &InputConfig{}
	case NodeOutput:
		return &OutputConfig{}
	case NodeAgent:
		return &AgentConfig{}
	case NodeLLMCall:
		return &LLMCallConfig{}
	case NodeToolCall:
		return &ToolCallConfig{}
	case NodeBranch:
		return &BranchConfig{}
	case NodeCode:
		return &CodeConfig{}
	case NodeMemory:
		return &MemoryConfig{}
	case NodeAssert:
		return &AssertConfig{}
	default:
		return nil
	}
}

// DecodeConfig decodes the node's raw config into its typed variant. For
// unknown node types it returns nil with no error: the raw bytes are kept
// as-is and the caller works without a typed view. A malformed config is an
// error local to this node; it never corrupts the rest of the document.
func (n *Node) DecodeConfig() (Config, error) {
	c := newConfig(n.Type)
	if c == nil {
		return nil, nil
	}
	if len(n.Data.Config) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(n.Data.Config, c); err != nil {
		return nil, fmt.Errorf("flowgraph: decode %s config: %w", n.Type, err)
	}
	return c, nil
}

// SetConfig replaces the node's raw config with the encoding of c.
func (n *Node) SetConfig(c Config) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("flowgraph: encode %s config: %w", c.NodeType(), err)
	}
	n.Data.Config = raw
	return nil
}
