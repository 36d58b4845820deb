package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate - точка на карте земельных участков.
// Сетка абстрактная, целочисленная (никакой геодезии).
type Coordinate struct {
	X int
	Y int
}

// BuildParcelID собирает канонический id участка вида "x,y".
// Обе координаты обязательны: nil означает, что вызывающий код
// потерял часть данных, и это ошибка, а не повод подставить ноль.
func BuildParcelID(x, y *int) (string, error) {
	if x == nil || y == nil {
		return "", fmt.Errorf("both coordinates are required to build a parcel id: x = %v, y = %v", x, y)
	}
	return fmt.Sprintf("%d,%d", *x, *y), nil
}

// SplitParcelID - обратная операция к BuildParcelID.
// Возвращает строки, а не числа: id может прийти извне и валидируется отдельно.
func SplitParcelID(id string) ([2]string, error) {
	parts := strings.Split(id, ",")
	if len(parts) != 2 {
		return [2]string{}, fmt.Errorf("invalid parcel id to split: %q", id)
	}
	return [2]string{parts[0], parts[1]}, nil
}

// ParseCoordinate разбирает сериализованную координату "x,y" в пару целых.
func ParseCoordinate(s string) (Coordinate, error) {
	parts, err := SplitParcelID(strings.TrimSpace(s))
	if err != nil {
		return Coordinate{}, err
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid x coordinate in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid y coordinate in %q: %w", s, err)
	}

	return Coordinate{X: x, Y: y}, nil
}

// ID возвращает канонический id точки.
func (c Coordinate) ID() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// DistanceTo - расстояние Чебышёва до другой точки:
// max(|dx|, |dy|), метрика "ходом короля".
func (c Coordinate) DistanceTo(other Coordinate) int {
	dx := abs(c.X - other.X)
	dy := abs(c.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsWithinBoundingBox - обе координатные дельты не превышают size.
func (c Coordinate) IsWithinBoundingBox(other Coordinate, size int) bool {
	return abs(c.X-other.X) <= size && abs(c.Y-other.Y) <= size
}

// NormalizeRange приводит два произвольных угла прямоугольника к виду
// (min, max) по каждой оси. Исторически клиенты присылают углы NW/SE,
// но полагаться на ориентацию мы не можем.
func NormalizeRange(a, b Coordinate) (Coordinate, Coordinate) {
	minC := Coordinate{X: minInt(a.X, b.X), Y: minInt(a.Y, b.Y)}
	maxC := Coordinate{X: maxInt(a.X, b.X), Y: maxInt(a.Y, b.Y)}
	return minC, maxC
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
