package palette

// brickColors is the built-in subset of the legacy BrickColor table.
var brickColors = []Entry{
	{1, "White", 242, 243, 243},
	{5, "Brick yellow", 215, 197, 154},
	{18, "Nougat", 204, 142, 105},
	{21, "Bright red", 196, 40, 28},
	{23, "Bright blue", 13, 105, 172},
	{24, "Bright yellow", 245, 205, 48},
	{26, "Black", 27, 42, 53},
	{28, "Dark green", 40, 127, 71},
	{37, "Bright green", 75, 151, 75},
	{38, "Dark orange", 160, 95, 53},
	{102, "Medium blue", 110, 153, 202},
	{106, "Bright orange", 218, 133, 65},
	{119, "Br. yellowish green", 164, 189, 71},
	{125, "Light orange", 234, 184, 146},
	{192, "Reddish brown", 105, 64, 40},
	{194, "Medium stone grey", 163, 162, 165},
	{199, "Dark stone grey", 99, 95, 98},
	{208, "Light stone grey", 229, 228, 223},
	{226, "Cool yellow", 253, 234, 141},
	{1001, "Institutional white", 248, 248, 248},
	{1002, "Mid gray", 205, 205, 205},
	{1003, "Really black", 17, 17, 17},
	{1004, "Really red", 255, 0, 0},
	{1010, "Really blue", 0, 0, 255},
}

// DefaultID is the BrickColor used when an id is unknown and a fallback is
// requested.
const DefaultID = 194
