// Package letras converts monetary amounts into Spanish long-form words
// ("Pesos" currency, optional "con N centavos" clause). The output must stay
// byte-identical with the historical remit documents, quirks included: the
// one-peso phrase keeps mixed case while two pesos and up are upper-cased.
package letras

import (
	"strings"

	"github.com/shopspring/decimal"
)

func unidades(num int64) string {
	switch num {
	case 1:
		return "Un"
	case 2:
		return "Dos"
	case 3:
		return "Tres"
	case 4:
		return "Cuatro"
	case 5:
		return "Cinco"
	case 6:
		return "Seis"
	case 7:
		return "Siete"
	case 8:
		return "Ocho"
	case 9:
		return "Nueve"
	default:
		return ""
	}
}

func decenasY(strSin string, numUnidades int64) string {
	if numUnidades > 0 {
		return strSin + " y " + unidades(numUnidades)
	}
	return strSin
}

func decenas(num int64) string {
	numDecena := num / 10
	numUnidad := num - numDecena*10

	switch numDecena {
	case 1:
		switch numUnidad {
		case 0:
			return "Diez"
		case 1:
			return "Once"
		case 2:
			return "Doce"
		case 3:
			return "Trece"
		case 4:
			return "Catorce"
		case 5:
			return "Quince"
		default:
			return "Dieci" + strings.ToLower(unidades(numUnidad))
		}
	case 2:
		if numUnidad == 0 {
			return "Veinte"
		}
		return "Veinti" + strings.ToLower(unidades(numUnidad))
	case 3:
		return decenasY("Treinta", numUnidad)
	case 4:
		return decenasY("Cuarenta", numUnidad)
	case 5:
		return decenasY("Cincuenta", numUnidad)
	case 6:
		return decenasY("Sesenta", numUnidad)
	case 7:
		return decenasY("Setenta", numUnidad)
	case 8:
		return decenasY("Ochenta", numUnidad)
	case 9:
		return decenasY("Noventa", numUnidad)
	case 0:
		return unidades(numUnidad)
	default:
		return ""
	}
}

func centenas(num int64) string {
	numCentenas := num / 100
	numDecenas := num - numCentenas*100

	switch numCentenas {
	case 1:
		if numDecenas > 0 {
			return "Ciento " + decenas(numDecenas)
		}
		return "Cien"
	case 2:
		return "Doscientos " + decenas(numDecenas)
	case 3:
		return "Trescientos " + decenas(numDecenas)
	case 4:
		return "Cuatrocientos " + decenas(numDecenas)
	case 5:
		return "Quinientos " + decenas(numDecenas)
	case 6:
		return "Seiscientos " + decenas(numDecenas)
	case 7:
		return "Setecientos " + decenas(numDecenas)
	case 8:
		return "Ochocientos " + decenas(numDecenas)
	case 9:
		return "Novecientos " + decenas(numDecenas)
	default:
		return decenas(numDecenas)
	}
}

// seccion renders the multiplier of a thousands/millions group. The
// singular form overrides when the multiplier is exactly 1 ("Un Mil",
// never "Uno Mil").
func seccion(num, divisor int64, strSingular, strPlural string) string {
	numCientos := num / divisor

	if numCientos == 0 {
		return ""
	}
	if numCientos > 1 {
		return centenas(numCientos) + " " + strPlural
	}
	return strSingular
}

func miles(num int64) string {
	const divisor = 1000
	numResto := num % divisor
	strMiles := seccion(num, divisor, "Un Mil", "Mil")
	strCentenas := centenas(numResto)

	if strMiles == "" {
		return strCentenas
	}
	return strings.TrimSpace(strMiles + " " + strCentenas)
}

func millones(num int64) string {
	const divisor = 1000000
	numResto := num % divisor
	strMillones := seccion(num, divisor, "Un Millón de", "Millones de")
	strMiles := miles(numResto)

	if strMillones == "" {
		return strMiles
	}
	return strings.TrimSpace(strMillones + " " + strMiles)
}

// centavosALetras uses a simpler unit/teen/decade table than the integer
// part — cents never exceed 99.
func centavosALetras(centavos int64) string {
	unidadesTabla := []string{
		"", "Uno", "Dos", "Tres", "Cuatro", "Cinco", "Seis", "Siete", "Ocho", "Nueve", "Diez",
		"Once", "Doce", "Trece", "Catorce", "Quince", "Dieciséis", "Diecisiete", "Dieciocho", "Diecinueve",
	}
	decenasTabla := []string{"", "", "Veinte", "Treinta", "Cuarenta", "Cincuenta", "Sesenta", "Setenta", "Ochenta", "Noventa"}

	if centavos < 20 {
		return unidadesTabla[centavos]
	}

	decena := centavos / 10
	unidad := centavos % 10

	if unidad > 0 {
		return decenasTabla[decena] + " y " + unidadesTabla[unidad]
	}
	return decenasTabla[decena]
}

// NumberToWords converts a non-negative monetary amount into Spanish words
// with currency units ("Peso"/"Pesos") and an optional cents clause.
func NumberToWords(amount decimal.Decimal) string {
	enteros := amount.Floor().IntPart()
	centavos := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart() - enteros*100

	// Rounding can push the cents to a full peso (0.9999 -> 100 centavos);
	// carry it into the integer part instead of indexing past the tables.
	if centavos >= 100 {
		enteros += centavos / 100
		centavos = centavos % 100
	}

	letrasCentavos := ""
	if centavos > 0 {
		letrasCentavos = "con " + centavosALetras(centavos) + " centavos"
	}

	if enteros == 0 {
		return strings.TrimSpace("Cero Pesos " + letrasCentavos)
	}
	if enteros == 1 {
		return strings.TrimSpace(millones(enteros) + " Peso " + letrasCentavos)
	}
	return strings.ToUpper(strings.TrimSpace(millones(enteros) + " Pesos " + letrasCentavos))
}
