// WHY: the decision tree is judged once per event, after candidate
// eligibility and the circuit breaker have already run. It never
// mutates state itself — Process applies whatever it returns.
package pricing

// Decision names the rule that produced final_price_cents.
type Decision string

const (
	DecisionUsedHuman            Decision = "USED_HUMAN"
	DecisionUsedSupplierPlusBias Decision = "USED_SUPPLIER_PLUS_BIAS"
	DecisionUsedHistoricPlusBias Decision = "USED_HISTORIC_PLUS_BIAS"
	DecisionFallbackNoData       Decision = "FALLBACK_NO_DATA"
)

// candidates bundles the eligibility outputs of Rule A so the
// fallback helper and the decision tree don't have to carry four loose
// arguments each.
type candidates struct {
	supplierEligible bool
	supplierPrice    int64
	historicEligible bool
	historicPrice    int64
}

// fallback implements the shared tail of Rule B: supplier+bias, else
// historic+bias, else the zero-data default.
func fallback(c candidates, bias int64) (int64, Decision) {
	if c.supplierEligible {
		return c.supplierPrice + bias, DecisionUsedSupplierPlusBias
	}
	if c.historicEligible {
		return c.historicPrice + bias, DecisionUsedHistoricPlusBias
	}
	return 0, DecisionFallbackNoData
}
