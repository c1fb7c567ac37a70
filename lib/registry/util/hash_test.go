package util

import "testing"

func TestHashNameCaseFolding(t *testing.T) {
	cases := [][2]string{
		{"Weapons", "weapons"},
		{"WEAPONS", "weapons"},
		{"EquipParamWeapon", "equipparamweapon"},
	}

	for _, c := range cases {
		if HashName(c[0]) != HashName(c[1]) {
			t.Errorf("expected %q and %q to hash equal", c[0], c[1])
		}
	}
}

func TestHashNameSeparatorFolding(t *testing.T) {
	if HashName(`menu\text`) != HashName("menu/text") {
		t.Error("expected backslash to fold to slash")
	}
	if HashName(`path\to\file`) != HashName("path/to/file") {
		t.Error("expected every backslash to fold to slash")
	}

	// separator and case folding compose
	if HashName(`Menu\Text`) != HashName("menu/text") {
		t.Error("expected separator and case folding to yield the same key")
	}

	// both spellings must land on the same folded code unit, not merely on
	// equal hashes for these particular names
	if HashName(`\`) != HashName("/") {
		t.Error("expected lone backslash and slash to hash equal")
	}
}

func TestHashNameDistinct(t *testing.T) {
	// not a collision-resistance proof, just a sanity check that common
	// table names stay apart
	names := []string{"weapons", "goods", "armor", "npcs", "spells", "rings"}
	seen := make(map[NameKey]string)

	for _, name := range names {
		key := HashName(name)
		if prev, ok := seen[key]; ok {
			t.Errorf("%q and %q collide on %#x", prev, name, key)
		}
		seen[key] = name
	}
}

func TestHashNameEmpty(t *testing.T) {
	if HashName("") != 0 {
		t.Errorf("expected empty name to hash to 0, got %#x", HashName(""))
	}
}
