package syntax

// NodeKind is the closed set of grammar productions.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota

	// File is the root; its children are the spans in source order.
	File
	// MarkupFragment wraps one opaque markup span.
	MarkupFragment
	// ScriptBlock is <% ... %> or a whole .vbs file.
	ScriptBlock
	// EchoBlock is <%= expr %>.
	EchoBlock
	// DirectiveBlock is <%@ attr=value ... %>.
	DirectiveBlock
	// DirectiveAttribute is Name or Name = Value inside a directive.
	DirectiveAttribute

	// Block is a statement list; terminators (newline, ':') are its direct children.
	Block
	// ErrorNode holds tokens that could not be reduced to a production.
	ErrorNode

	OptionStatement
	VariableDeclaration
	VariableDeclarator
	ArrayBounds
	ConstDeclaration
	ConstDeclarator
	RedimStatement
	// VariableAssignment covers a = e, Set a = e and Let a = e.
	VariableAssignment
	CallStatement
	IfStatement
	ElseIfClause
	ElseClause
	// EndClause is the closing keyword pair of a block construct (End If, Next, Loop, Wend).
	EndClause
	ForStatement
	ForEachStatement
	WhileStatement
	DoLoopStatement
	// LoopCondition is While/Until cond after Do or Loop.
	LoopCondition
	SelectStatement
	CaseClause
	CaseElseClause
	WithStatement
	SubDeclaration
	FunctionDeclaration
	PropertyDeclaration
	ParameterList
	Parameter
	ClassDeclaration
	ExitStatement
	OnErrorStatement
	// BlockCloser is a closer whose opener lives in an earlier script block.
	BlockCloser

	BinaryExpression
	UnaryExpression
	ParenthesizedExpression
	LiteralExpression
	NameExpression
	MemberAccessExpression
	CallExpression
	ArgumentList
	NewExpression

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	NodeInvalid:             "Invalid",
	File:                    "File",
	MarkupFragment:          "MarkupFragment",
	ScriptBlock:             "ScriptBlock",
	EchoBlock:               "EchoBlock",
	DirectiveBlock:          "DirectiveBlock",
	DirectiveAttribute:      "DirectiveAttribute",
	Block:                   "Block",
	ErrorNode:               "ErrorNode",
	OptionStatement:         "OptionStatement",
	VariableDeclaration:     "VariableDeclaration",
	VariableDeclarator:      "VariableDeclarator",
	ArrayBounds:             "ArrayBounds",
	ConstDeclaration:        "ConstDeclaration",
	ConstDeclarator:         "ConstDeclarator",
	RedimStatement:          "RedimStatement",
	VariableAssignment:      "VariableAssignment",
	CallStatement:           "CallStatement",
	IfStatement:             "IfStatement",
	ElseIfClause:            "ElseIfClause",
	ElseClause:              "ElseClause",
	EndClause:               "EndClause",
	ForStatement:            "ForStatement",
	ForEachStatement:        "ForEachStatement",
	WhileStatement:          "WhileStatement",
	DoLoopStatement:         "DoLoopStatement",
	LoopCondition:           "LoopCondition",
	SelectStatement:         "SelectStatement",
	CaseClause:              "CaseClause",
	CaseElseClause:          "CaseElseClause",
	WithStatement:           "WithStatement",
	SubDeclaration:          "SubDeclaration",
	FunctionDeclaration:     "FunctionDeclaration",
	PropertyDeclaration:     "PropertyDeclaration",
	ParameterList:           "ParameterList",
	Parameter:               "Parameter",
	ClassDeclaration:        "ClassDeclaration",
	ExitStatement:           "ExitStatement",
	OnErrorStatement:        "OnErrorStatement",
	BlockCloser:             "BlockCloser",
	BinaryExpression:        "BinaryExpression",
	UnaryExpression:         "UnaryExpression",
	ParenthesizedExpression: "ParenthesizedExpression",
	LiteralExpression:       "LiteralExpression",
	NameExpression:          "NameExpression",
	MemberAccessExpression:  "MemberAccessExpression",
	CallExpression:          "CallExpression",
	ArgumentList:            "ArgumentList",
	NewExpression:           "NewExpression",
}

func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// IsExpression reports whether k is an expression production.
func (k NodeKind) IsExpression() bool {
	return k >= BinaryExpression && k <= NewExpression && k != ArgumentList
}

// IsSpan reports whether k wraps one mode span (a direct child of File).
func (k NodeKind) IsSpan() bool {
	switch k {
	case MarkupFragment, ScriptBlock, EchoBlock, DirectiveBlock:
		return true
	default:
		return false
	}
}

// IsBlockConstruct reports whether k owns a body closed by an EndClause.
func (k NodeKind) IsBlockConstruct() bool {
	switch k {
	case IfStatement, ForStatement, ForEachStatement, WhileStatement, DoLoopStatement,
		SelectStatement, WithStatement, SubDeclaration, FunctionDeclaration,
		PropertyDeclaration, ClassDeclaration:
		return true
	default:
		return false
	}
}

// NodeKindCount returns the number of node kinds.
func NodeKindCount() int { return int(nodeKindCount) }
