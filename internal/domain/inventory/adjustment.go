package inventory

// AdjustmentDirection calcula la dirección del movimiento Adjustment para una
// discrepancia de conteo (esperada - contada). Un faltante (discrepancy > 0)
// sale de la ubicación (fromSet); un sobrante entra a ella (toSet). La
// cantidad del movimiento es siempre el valor absoluto.
func AdjustmentDirection(discrepancy int64) (fromSet, toSet bool, quantity int64) {
	switch {
	case discrepancy > 0:
		return true, false, discrepancy
	case discrepancy < 0:
		return false, true, -discrepancy
	default:
		return false, false, 0
	}
}
