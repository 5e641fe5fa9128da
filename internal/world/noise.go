package world

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина для раскладки карт
const (
	noiseAlpha   = 2.0 // Сглаживание
	noiseBeta    = 2.0 // Частота
	noiseOctaves = 3
)

// Noise — детерминированный двумерный шум со значениями в [0,1]
type Noise struct {
	p     *perlin.Perlin
	scale float64
}

// NewNoise создаёт генератор шума для сида
func NewNoise(seed int64, scale float64) *Noise {
	return &Noise{
		p:     perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
		scale: scale,
	}
}

// At возвращает значение шума в клетке (x, y)
func (n *Noise) At(x, y int) float64 {
	v := (n.p.Noise2D(float64(x)*n.scale, float64(y)*n.scale) + 1.0) / 2.0
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
