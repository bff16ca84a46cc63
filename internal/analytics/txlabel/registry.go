package txlabel

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// commonSignatures are the ERC-20, WETH and router methods resolved without a
// caller-supplied lookup.
var commonSignatures = []string{
	"transfer(address,uint256)",
	"transferFrom(address,address,uint256)",
	"approve(address,uint256)",
	"increaseAllowance(address,uint256)",
	"decreaseAllowance(address,uint256)",
	"permit(address,address,uint256,uint256,uint8,bytes32,bytes32)",
	"deposit()",
	"withdraw(uint256)",
	"setApprovalForAll(address,bool)",
	"safeTransferFrom(address,address,uint256)",
	"multicall(bytes[])",
	"multicall(uint256,bytes[])",
	"execute(bytes,bytes[],uint256)",
	"swapExactTokensForTokens(uint256,uint256,address[],address,uint256)",
	"swapTokensForExactTokens(uint256,uint256,address[],address,uint256)",
	"swapExactETHForTokens(uint256,address[],address,uint256)",
	"swapETHForExactTokens(uint256,address[],address,uint256)",
	"swapExactTokensForETH(uint256,uint256,address[],address,uint256)",
	"swapTokensForExactETH(uint256,uint256,address[],address,uint256)",
	"addLiquidity(address,address,uint256,uint256,uint256,uint256,address,uint256)",
	"addLiquidityETH(address,uint256,uint256,uint256,address,uint256)",
	"removeLiquidity(address,address,uint256,uint256,uint256,address,uint256)",
	"removeLiquidityETH(address,uint256,uint256,uint256,address,uint256)",
	"exactInputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))",
	"exactInput((bytes,address,uint256,uint256,uint256))",
	"exactOutputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))",
	"exactOutput((bytes,address,uint256,uint256,uint256))",
}

// Registry maps lower-case 0x-prefixed 4-byte selectors to method signatures.
type Registry map[string]string

// Resolve implements Resolver.
func (r Registry) Resolve(selector string) (string, bool) {
	name, ok := r[strings.ToLower(selector)]
	return name, ok
}

// Register adds signature under its Keccak-256 selector and returns the selector.
func (r Registry) Register(signature string) string {
	sel := SelectorOf(signature)
	r[sel] = signature
	return sel
}

// SelectorOf returns the 0x-prefixed first four bytes of keccak256(signature).
func SelectorOf(signature string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(signature))[:4])
}

// NewRegistry builds a registry from canonical signatures.
func NewRegistry(signatures ...string) Registry {
	r := make(Registry, len(signatures))
	for _, sig := range signatures {
		r.Register(sig)
	}
	return r
}

var builtin = NewRegistry(commonSignatures...)

// Builtin returns the registry of well-known selectors.
func Builtin() Registry {
	return builtin
}
