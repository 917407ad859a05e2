package letras_test

import (
	"strings"
	"testing"

	"github.com/rafamossetto/distributor-api/internal/letras"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func words(s string) string {
	return letras.NumberToWords(decimal.RequireFromString(s))
}

func TestZero(t *testing.T) {
	assert.Equal(t, "Cero Pesos", words("0"))
}

func TestZeroWithCents(t *testing.T) {
	assert.Equal(t, "Cero Pesos con Veinte y Cinco centavos", words("0.25"))
}

func TestOnePesoKeepsMixedCase(t *testing.T) {
	// The one-peso phrase is the only one not upper-cased.
	assert.Equal(t, "Un Peso", words("1"))
	assert.Equal(t, "Un Peso con Cincuenta centavos", words("1.50"))
	assert.Equal(t, "Un Peso con Dieciséis centavos", words("1.16"))
}

func TestTwoPesosAndUpAreUpperCased(t *testing.T) {
	assert.Equal(t, "DOS PESOS", words("2"))
	assert.Equal(t, "VEINTIUN PESOS", words("21"))
	assert.Equal(t, "CIEN PESOS", words("100"))
	assert.Equal(t, "CIENTO QUINCE PESOS", words("115"))
	assert.Equal(t, "UN MIL PESOS", words("1000"))
	assert.Equal(t, "UN MILLÓN DE PESOS", words("1000000"))
}

func TestTensJoinedWithY(t *testing.T) {
	assert.Equal(t, "TREINTA Y DOS PESOS", words("32"))
	assert.Equal(t, "NOVENTA Y NUEVE PESOS", words("99"))
}

func TestThousandsWithCents(t *testing.T) {
	got := words("1234.50")
	assert.Contains(t, strings.ToUpper(got), "CON CINCUENTA CENTAVOS")
	assert.Equal(t, "UN MIL DOSCIENTOS TREINTA Y CUATRO PESOS CON CINCUENTA CENTAVOS", got)
}

func TestCentsDecadesJoinedWithY(t *testing.T) {
	assert.Equal(t, "DIEZ PESOS CON NOVENTA Y NUEVE CENTAVOS", words("10.99"))
}

func TestRoundHundredsKeepInnerSpacing(t *testing.T) {
	// The hundreds builder always appends the tens segment, so round
	// hundreds carry a double space. Kept for fidelity with the printed
	// documents.
	assert.Equal(t, "DOSCIENTOS  PESOS", words("200"))
}

func TestCentsRoundingUpToFullPesoCarries(t *testing.T) {
	// 0.9999 rounds to 100 centavos; the carry lands in the peso part
	// instead of overflowing the cents tables.
	assert.Equal(t, "Un Peso", words("0.9999"))
	assert.Equal(t, "DOS PESOS", words("1.999"))
	assert.Equal(t, "TRES PESOS", words("2.995"))
}

func TestMillionsCombined(t *testing.T) {
	// "QUINIENTOS  MIL" keeps the hundreds builder's double space.
	assert.Equal(t, "DOS MILLONES DE QUINIENTOS  MIL PESOS", words("2500000"))
}
