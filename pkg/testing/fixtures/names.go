// Zaparoo Core
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

package fixtures

// Common name sets for matcher and scanner tests

// ReportNames returns two versions of one report plus an unrelated file.
func ReportNames() []string {
	return []string{"Report_Final.txt", "Report_Final_v2.txt", "Unrelated.txt"}
}

// PartVideoNames returns names that follow the part or scene convention.
func PartVideoNames() []string {
	return []string{
		"Movie Part 1.mp4",
		"movie.pt.2.mkv",
		"Scene04.mp4",
		"Show Scenes - 3.avi",
		"SC_12.avi",
		"Part1",
		"PART 7",
	}
}

// LookalikeNames returns names that resemble a part video but are not one.
func LookalikeNames() []string {
	return []string{
		"Department 5.mp4",
		"Partial 2.mp4",
		"Scenery 4.jpg",
		"Script 2.txt",
		"Report_Final.txt",
		"Chapter 3.mp4",
	}
}

// MixedNames returns a small library of duplicates, copies and unrelated
// names.
func MixedNames() []string {
	return []string{
		"Holiday 2019 (1).jpg",
		"Holiday 2019 (2).jpg",
		"holiday-2019.jpg",
		"Report_Final.txt",
		"Report_Final_v2.txt",
		"Notes.md",
		"Notes (copy).md",
	}
}
