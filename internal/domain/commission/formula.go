package commission

// Amount applies the minimum-guarantee commission scheme: the barber earns
// half of service production once production reaches twice the base salary,
// and the flat base salary otherwise.
func Amount(servicesTotal, baseSalary float64) float64 {
	if servicesTotal >= 2*baseSalary {
		return servicesTotal / 2
	}
	return baseSalary
}

// NetPayment deducts the period's unabsorbed advances from the commission.
func NetPayment(commissionAmount, advancesTotal float64) float64 {
	return commissionAmount - advancesTotal
}
