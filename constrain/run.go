package constrain

import "github.com/marlls1989/gohbcn/hbcn"

// Run dispatches to Pseudoclock or Proportional according to cfg.Algorithm.
func Run(h *hbcn.StructuralHBCN, cfg Config) (hbcn.ConstrainerResult, error) {
	if cfg.Algorithm == Proportional {
		return Proportional(h, cfg)
	}

	return Pseudoclock(h, cfg)
}
