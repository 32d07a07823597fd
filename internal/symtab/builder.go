package symtab

import (
	"fmt"

	"verisem/internal/cst"
	"verisem/internal/diag"
	"verisem/internal/source"
	"verisem/internal/token"
)

// builder is the single-pass CST walker. It keeps a current-scope cursor,
// captures reference chains into the scope that owns them, and declares one
// scope tree node per named construct.
type builder struct {
	file     *source.File
	reporter diag.Reporter
	scope    *ScopeNode
}

func (b *builder) report(code diag.Code, span source.Span, msg string, notes []diag.Note) {
	if b.reporter == nil {
		return
	}
	b.reporter.Report(code, diag.SevError, span, msg, notes)
}

// declare inserts name into the current scope; on collision the first
// declaration wins and a duplicate diagnostic is recorded.
func (b *builder) declare(name string, info SymbolInfo, span source.Span) *ScopeNode {
	node, inserted := b.scope.Declare(name, info)
	if !inserted {
		var notes []diag.Note
		if node.Info.SyntaxOrigin != nil {
			notes = []diag.Note{{
				Span: node.Info.SyntaxOrigin.Span(),
				Msg:  "previously declared here",
			}}
		}
		b.report(diag.SymDuplicateSymbol, span,
			fmt.Sprintf("symbol %q is already defined in the %s scope", name, b.scope.FullPath()),
			notes)
	}
	return node
}

// inScope runs fn with the current-scope cursor moved to node.
func (b *builder) inScope(node *ScopeNode, fn func()) {
	prev := b.scope
	b.scope = node
	fn()
	b.scope = prev
}

// attach hands a closed reference chain to the current scope. Empty chains
// are non-actionable and dropped.
func (b *builder) attach(refs *DependentReferences) {
	if refs == nil || refs.Empty() {
		return
	}
	b.scope.Info.PendingReferences = append(b.scope.Info.PendingReferences, refs)
}

func (b *builder) buildItem(n cst.Node) {
	br := cst.AsBranch(n)
	if br == nil {
		return
	}
	switch br.Tag {
	case cst.TagModuleDeclaration:
		b.buildScopedDeclaration(br, KindModule)
	case cst.TagPackageDeclaration:
		b.buildScopedDeclaration(br, KindPackage)
	case cst.TagClassDeclaration:
		b.buildScopedDeclaration(br, KindClass)
	case cst.TagParamDeclaration:
		b.buildParamDeclaration(br)
	case cst.TagDataDeclaration:
		b.buildDataDeclaration(br)
	case cst.TagAssignStatement:
		b.walkExpressions(br)
	case cst.TagGenerateRegion:
		// The region itself is not a scope; only its blocks are.
		for _, child := range br.Children {
			b.buildItem(child)
		}
	case cst.TagConditionalGenerate:
		b.buildConditionalGenerate(br)
	}
}

// buildScopedDeclaration handles modules, packages and classes: declare the
// name in the enclosing scope, then descend the body with the new scope
// current. Header parameters and ports declare into the new scope.
func (b *builder) buildScopedDeclaration(decl *cst.Branch, kind SymbolKind) {
	name := cst.DeclaredName(decl)
	if name == nil {
		return
	}
	node := b.declare(name.Tok.Text, SymbolInfo{
		Kind:         kind,
		File:         b.file,
		SyntaxOrigin: decl,
	}, name.Tok.Span)

	b.inScope(node, func() {
		for _, child := range decl.Children {
			br := cst.AsBranch(child)
			if br == nil {
				continue
			}
			switch br.Tag {
			case cst.TagParameterPortList:
				for _, param := range br.Children {
					if p := cst.AsBranch(param); p != nil && p.Tag == cst.TagParamDeclaration {
						b.buildParamDeclaration(p)
					}
				}
			case cst.TagPortDeclarationList:
				for _, port := range br.Children {
					if p := cst.AsBranch(port); p != nil && p.Tag == cst.TagPortDeclaration {
						b.buildPortDeclaration(p)
					}
				}
			default:
				b.buildItem(br)
			}
		}
	})
}

func (b *builder) buildParamDeclaration(decl *cst.Branch) {
	name := cst.ParamName(decl)
	if name == nil {
		return
	}
	info := SymbolInfo{
		Kind:         KindParameter,
		File:         b.file,
		SyntaxOrigin: decl,
	}
	if dt := findChildBranch(decl, cst.TagDataType); dt != nil {
		info.DeclaredType = b.buildDataType(dt)
	}
	b.declare(name.Tok.Text, info, name.Tok.Span)
	b.walkExpressions(decl)
}

func (b *builder) buildPortDeclaration(decl *cst.Branch) {
	name := cst.PortName(decl)
	if name == nil {
		return
	}
	info := SymbolInfo{
		Kind:         KindDataOrInstance,
		File:         b.file,
		SyntaxOrigin: decl,
	}
	if dt := findChildBranch(decl, cst.TagDataType); dt != nil {
		info.DeclaredType = b.buildDataType(dt)
	}
	b.declare(name.Tok.Text, info, name.Tok.Span)
}

// buildDataDeclaration declares every variable or instance of one
// declaration; they all share the declaration's type.
func (b *builder) buildDataDeclaration(decl *cst.Branch) {
	var declaredType DeclarationTypeInfo
	if dt := findChildBranch(decl, cst.TagDataType); dt != nil {
		declaredType = b.buildDataType(dt)
	}
	for _, child := range decl.Children {
		br := cst.AsBranch(child)
		if br == nil {
			continue
		}
		switch br.Tag {
		case cst.TagVariable:
			b.buildVariable(br, declaredType)
		case cst.TagInstance:
			b.buildInstance(br, declaredType)
		}
	}
}

func (b *builder) buildVariable(v *cst.Branch, declaredType DeclarationTypeInfo) {
	name := cst.VariableName(v)
	if name == nil {
		return
	}
	b.declare(name.Tok.Text, SymbolInfo{
		Kind:         KindDataOrInstance,
		File:         b.file,
		SyntaxOrigin: v,
		DeclaredType: declaredType,
	}, name.Tok.Span)
	b.walkExpressions(v)
}

// buildInstance declares the instance, then seeds a reference chain whose
// root is the instance itself, already resolved. Named port connections
// attach as siblings under that root, so each port name later resolves
// through the instance's declared type.
func (b *builder) buildInstance(inst *cst.Branch, declaredType DeclarationTypeInfo) {
	name := cst.InstanceName(inst)
	if name == nil {
		return
	}
	node := b.declare(name.Tok.Text, SymbolInfo{
		Kind:         KindDataOrInstance,
		File:         b.file,
		SyntaxOrigin: inst,
		DeclaredType: declaredType,
	}, name.Tok.Span)

	chain := &DependentReferences{}
	root := chain.Push(ReferenceComponent{
		Identifier:     name.Tok.Text,
		Kind:           RefUnqualified,
		Span:           name.Tok.Span,
		ResolvedSymbol: node,
	})

	if conns := findChildBranch(inst, cst.TagPortConnectionList); conns != nil {
		root.Children = make([]*ReferenceComponentNode, 0, cst.NamedConnections(conns))
		for _, child := range conns.Children {
			br := cst.AsBranch(child)
			if br == nil {
				continue
			}
			switch br.Tag {
			case cst.TagNamedPortConnection:
				if formal := cst.ConnectionName(br); formal != nil {
					chain.AttachAtBranchPoint(root, ReferenceComponent{
						Identifier: formal.Tok.Text,
						Kind:       RefMemberOfTypeOfParent,
						Span:       formal.Tok.Span,
					})
				}
				b.walkExpressions(br)
			case cst.TagExpression:
				b.walkExpression(br)
			}
		}
	}
	b.attach(chain)
}

// buildDataType captures the type subtree. A user-defined type is a
// reference chain; its last plain-chain component becomes the declared
// type. Primitive types leave UserDefinedType nil.
func (b *builder) buildDataType(dt *cst.Branch) DeclarationTypeInfo {
	info := DeclarationTypeInfo{SyntaxOrigin: dt}
	for _, child := range dt.Children {
		if ref := cst.AsBranch(child); ref != nil && ref.Tag == cst.TagReference {
			if chain := b.captureReference(ref); chain != nil {
				info.UserDefinedType = chain.LastLeaf()
			}
		}
	}
	return info
}

func (b *builder) buildConditionalGenerate(cond *cst.Branch) {
	for _, child := range cond.Children {
		br := cst.AsBranch(child)
		if br == nil {
			continue
		}
		switch br.Tag {
		case cst.TagGenerateIfClause:
			// The condition is evaluated in the enclosing scope.
			b.walkExpressions(br)
			if body := cst.GenerateIfBody(br); body != nil {
				b.buildGenerateBlock(body)
			}
		case cst.TagGenerateElseClause:
			body := cst.GenerateElseBody(br)
			if body == nil {
				continue
			}
			if body.Tag == cst.TagConditionalGenerate {
				// else-if chains flatten into the enclosing scope; the
				// else arm gets no scope of its own.
				b.buildConditionalGenerate(body)
			} else {
				b.buildGenerateBlock(body)
			}
		}
	}
}

func (b *builder) buildGenerateBlock(block *cst.Branch) {
	var name string
	var span source.Span
	if label := cst.GenerateBlockLabel(block); label != nil {
		name = label.Tok.Text
		span = label.Tok.Span
	} else {
		name = b.scope.CreateAnonymousName("generate-block")
		span = block.Span()
	}
	node := b.declare(name, SymbolInfo{
		Kind:         KindGenerate,
		File:         b.file,
		SyntaxOrigin: block,
	}, span)

	b.inScope(node, func() {
		for _, child := range block.Children {
			b.buildItem(child)
		}
	})
}

// captureReference turns one TagReference subtree into a chain attached to
// the current scope and returns it, nil when nothing was captured.
func (b *builder) captureReference(ref *cst.Branch) *DependentReferences {
	chain := &DependentReferences{}
	lastOp := token.Invalid
	for _, child := range ref.Children {
		if leaf := cst.AsLeaf(child); leaf != nil {
			switch {
			case leaf.Tok.Kind == token.Ident:
				kind := RefUnqualified
				if !chain.Empty() {
					if lastOp == token.Dot {
						kind = RefMemberOfTypeOfParent
					} else {
						kind = RefDirectMember
					}
				}
				chain.Push(ReferenceComponent{
					Identifier: leaf.Tok.Text,
					Kind:       kind,
					Span:       leaf.Tok.Span,
				})
				lastOp = token.Invalid
			case leaf.Tok.IsHierarchyOperator():
				lastOp = leaf.Tok.Kind
			}
			continue
		}
		if params := cst.AsBranch(child); params != nil && params.Tag == cst.TagActualParameterList {
			b.walkActualParameters(chain, params)
		}
	}
	if chain.Empty() {
		return nil
	}
	b.attach(chain)
	return chain
}

// walkActualParameters handles #(...) on a type reference: named parameter
// assignments branch off the component the list follows, so the plain chain
// stays free to continue with "::".
func (b *builder) walkActualParameters(chain *DependentReferences, params *cst.Branch) {
	bp := chain.LastLeaf()
	for _, child := range params.Children {
		br := cst.AsBranch(child)
		if br == nil {
			continue
		}
		switch br.Tag {
		case cst.TagNamedParamAssignment:
			if formal := cst.ConnectionName(br); formal != nil && bp != nil {
				chain.AttachAtBranchPoint(bp, ReferenceComponent{
					Identifier: formal.Tok.Text,
					Kind:       RefDirectMember,
					Span:       formal.Tok.Span,
				})
			}
			b.walkExpressions(br)
		case cst.TagExpression:
			b.walkExpression(br)
		}
	}
}

// walkExpression captures every reference chain inside one expression.
func (b *builder) walkExpression(expr *cst.Branch) {
	for _, child := range expr.Children {
		br := cst.AsBranch(child)
		if br == nil {
			continue
		}
		switch br.Tag {
		case cst.TagReference:
			b.captureReference(br)
		case cst.TagExpression:
			b.walkExpression(br)
		}
	}
}

// walkExpressions captures chains from every direct expression child.
func (b *builder) walkExpressions(n *cst.Branch) {
	for _, child := range n.Children {
		if expr := cst.AsBranch(child); expr != nil && expr.Tag == cst.TagExpression {
			b.walkExpression(expr)
		}
	}
}

func findChildBranch(n *cst.Branch, tag cst.Tag) *cst.Branch {
	for _, child := range n.Children {
		if br := cst.AsBranch(child); br != nil && br.Tag == tag {
			return br
		}
	}
	return nil
}
